package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/geo"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/pkg/errormapper"
)

// CountryResolver is satisfied by *geo.Resolver.
type CountryResolver interface {
	ResolveCountry(ctx context.Context, ip string) geo.Location
}

type GeoHandler struct {
	resolver CountryResolver
}

func NewGeoHandler(resolver CountryResolver) *GeoHandler {
	return &GeoHandler{resolver: resolver}
}

// DetectCountry handles GET /geo/detect
func (h *GeoHandler) DetectCountry(c *gin.Context) {
	ip := c.ClientIP()
	logCtx := logging.ContextWithClientIP(logging.ContextWithHandler(c.Request.Context(), "DetectCountry"), ip)

	loc := h.resolver.ResolveCountry(logCtx, ip)
	if loc.CountryCode == "" {
		// The resolver always falls back to a default, so this only guards
		// against a misconfigured default.
		slog.ErrorContext(logCtx, "Country detection returned no country")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detect location", "code": errormapper.ErrorCodeSystemError})
		return
	}
	c.JSON(http.StatusOK, loc)
}
