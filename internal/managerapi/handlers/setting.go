package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/managerapi/handlers/dto"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

const maxSettingBody = 32 << 10

var settingKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,63}$`)

// SettingHandler exposes the generic key/value store used by the storefront
// front end (banners, feature flags and the like).
type SettingHandler struct {
	dbQueries database.Querier
}

func NewSettingHandler(q database.Querier) *SettingHandler {
	return &SettingHandler{dbQueries: q}
}

// ListSettings handles GET /settings
func (h *SettingHandler) ListSettings(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "ListSettings")
	rows, err := h.dbQueries.ListSettings(logCtx)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	resp := make([]dto.SettingResponse, len(rows))
	for i, s := range rows {
		resp[i] = dto.NewSettingResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetSetting handles GET /settings/:key
func (h *SettingHandler) GetSetting(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetSetting")
	key, ok := settingKey(c)
	if !ok {
		return
	}
	s, err := h.dbQueries.GetSetting(logCtx, key)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingResponse(s))
}

// PutSetting handles PUT /settings/:key. The body is stored as is and must
// be valid JSON.
func (h *SettingHandler) PutSetting(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "PutSetting")
	key, ok := settingKey(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSettingBody+1))
	if err != nil {
		badRequest(c, "could not read body")
		return
	}
	if len(body) > maxSettingBody {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "setting value is too large", "code": errormapper.ErrorCodeValidationFailure})
		return
	}
	if !json.Valid(body) {
		badRequest(c, "setting value must be valid JSON")
		return
	}

	s, err := h.dbQueries.UpsertSetting(logCtx, database.UpsertSettingParams{Key: key, Value: body})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	slog.InfoContext(logCtx, "Setting stored", slog.String("key", key))
	c.JSON(http.StatusOK, dto.NewSettingResponse(s))
}

// DeleteSetting handles DELETE /settings/:key
func (h *SettingHandler) DeleteSetting(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "DeleteSetting")
	key, ok := settingKey(c)
	if !ok {
		return
	}
	n, err := h.dbQueries.DeleteSetting(logCtx, key)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found", "code": errormapper.ErrorCodeNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

func settingKey(c *gin.Context) (string, bool) {
	key := c.Param("key")
	if !settingKeyPattern.MatchString(key) {
		badRequest(c, "invalid setting key")
		return "", false
	}
	return key, true
}
