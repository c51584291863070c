package dto

import (
	"encoding/json"
	"time"

	"github.com/thrillee/glowshop/internal/database"
)

type SettingResponse struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewSettingResponse(s database.Setting) SettingResponse {
	return SettingResponse{Key: s.Key, Value: json.RawMessage(s.Value), UpdatedAt: s.UpdatedAt.Time}
}
