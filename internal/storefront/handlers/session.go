package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/pricing"
	"github.com/thrillee/glowshop/internal/session"
	"github.com/thrillee/glowshop/internal/storefront/handlers/dto"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

type SessionHandler struct {
	sessions *session.Manager
	table    *pricing.Table
}

func NewSessionHandler(sessions *session.Manager, table *pricing.Table) *SessionHandler {
	return &SessionHandler{sessions: sessions, table: table}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	ip := c.ClientIP()
	logCtx := logging.ContextWithClientIP(logging.ContextWithHandler(c.Request.Context(), "CreateSession"), ip)
	s := h.sessions.Create(logCtx, ip)
	c.JSON(http.StatusCreated, h.toResponse(s))
}

// GetSession handles GET /sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	logCtx := h.logCtx(c, "GetSession")
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondError(c, logCtx, sessionError(err))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(s))
}

// SetRegionalPricing handles PUT /sessions/:id/regional-pricing
func (h *SessionHandler) SetRegionalPricing(c *gin.Context) {
	logCtx := h.logCtx(c, "SetRegionalPricing")
	var req dto.SetRegionalPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(logCtx, "Failed to bind request JSON", slog.Any("error", err))
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	s, err := h.sessions.SetEnabled(logCtx, c.Param("id"), *req.Enabled, c.ClientIP())
	if err != nil {
		respondError(c, logCtx, sessionError(err))
		return
	}
	slog.InfoContext(logCtx, "Regional pricing toggled", slog.Bool("enabled", s.Enabled))
	c.JSON(http.StatusOK, h.toResponse(s))
}

// SelectCountry handles PUT /sessions/:id/country
func (h *SessionHandler) SelectCountry(c *gin.Context) {
	logCtx := h.logCtx(c, "SelectCountry")
	var req dto.SelectCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	s, err := h.sessions.SelectCountry(c.Param("id"), req.CountryCode)
	if err != nil {
		respondError(c, logCtx, sessionError(err))
		return
	}
	c.JSON(http.StatusOK, h.toResponse(s))
}

// DeleteSession handles DELETE /sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	logCtx := h.logCtx(c, "DeleteSession")
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		respondError(c, logCtx, sessionError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) logCtx(c *gin.Context, name string) context.Context {
	return logging.ContextWithSessionID(logging.ContextWithHandler(c.Request.Context(), name), c.Param("id"))
}

func (h *SessionHandler) toResponse(s session.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		SessionID: s.ID,
		Enabled:   s.Enabled,
		CreatedAt: s.CreatedAt,
		LastSeen:  s.LastSeen,
	}
	if s.SelectedCountry != "" {
		code := s.SelectedCountry
		resp.SelectedCountry = &code
		if p, ok := h.table.Lookup(code); ok {
			country := dto.NewCountryResponse(p)
			resp.Country = &country
		}
	}
	return resp
}

func sessionError(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return errormapper.Wrap(errormapper.ErrorCodeNotFound, "session not found", err)
	case errors.Is(err, session.ErrUnknownCountry):
		return errormapper.Wrap(errormapper.ErrorCodeUnknownCountry, "country is not available for regional pricing", err)
	case errors.Is(err, session.ErrCountryUnresolved):
		return errormapper.Wrap(errormapper.ErrorCodeUnknownCountry, "country could not be detected, select one explicitly", err)
	}
	return err
}
