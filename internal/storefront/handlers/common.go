package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/thrillee/glowshop/pkg/errormapper"
)

const (
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultOffset = 0

	// SessionHeader carries the regional pricing session on catalog, cart
	// and checkout requests.
	SessionHeader = "X-Session-ID"
)

// parsePagination extracts limit and offset from query params with validation and defaults.
func parsePagination(c *gin.Context) (limit, offset int32) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))
	offsetStr := c.DefaultQuery("offset", strconv.Itoa(DefaultOffset))

	limit64, err := strconv.ParseInt(limitStr, 10, 32)
	if err != nil || limit64 <= 0 {
		limit = DefaultLimit
	} else if limit64 > MaxLimit {
		limit = MaxLimit
	} else {
		limit = int32(limit64)
	}

	offset64, err := strconv.ParseInt(offsetStr, 10, 32)
	if err != nil || offset64 < 0 {
		offset = DefaultOffset
	} else {
		offset = int32(offset64)
	}
	return limit, offset
}

// parseIDParam reads a positive integer path parameter, answering 400 itself
// when it is malformed.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "code": errormapper.ErrorCodeValidationFailure})
		return 0, false
	}
	return id, true
}

// respondError writes the {error, code} body for err. Errors without a code
// are logged and reported as internal failures.
func respondError(c *gin.Context, logCtx context.Context, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": errormapper.ErrorCodeNotFound})
		return
	}
	status, code, message := errormapper.Describe(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(logCtx, "Request failed", slog.String("code", code), slog.Any("error", err))
	} else {
		slog.InfoContext(logCtx, "Request rejected", slog.String("code", code), slog.String("reason", message))
	}
	c.JSON(status, gin.H{"error": message, "code": code})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "code": errormapper.ErrorCodeValidationFailure})
}
