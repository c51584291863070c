package auth

import (
	"crypto/sha256"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/thrillee/glowshop/internal/logging"
)

const (
	AdminKeyHeader = "X-Admin-Key"
	UserIDHeader   = "X-User-ID"

	userIDKey = "user_id"
)

// AdminGuard checks the back-office API key against its bcrypt hash. Keys
// that passed once are remembered by digest so bcrypt runs once per key.
type AdminGuard struct {
	hash     string
	mu       sync.RWMutex
	verified map[[sha256.Size]byte]struct{}
}

func NewAdminGuard(hash string) *AdminGuard {
	return &AdminGuard{hash: hash, verified: make(map[[sha256.Size]byte]struct{})}
}

func (g *AdminGuard) Check(key string) bool {
	if g.hash == "" || key == "" {
		return false
	}
	digest := sha256.Sum256([]byte(key))
	g.mu.RLock()
	_, ok := g.verified[digest]
	g.mu.RUnlock()
	if ok {
		return true
	}
	if !CheckAPIKey(key, g.hash) {
		return false
	}
	g.mu.Lock()
	g.verified[digest] = struct{}{}
	g.mu.Unlock()
	return true
}

// RequireAdmin accepts the key from X-Admin-Key or an Authorization bearer
// token.
func (g *AdminGuard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminKeyHeader)
		if key == "" {
			if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				key = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		if !g.Check(key) {
			slog.WarnContext(c.Request.Context(), "Admin auth failed", slog.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "code": "UNAUTHORIZED"})
			return
		}
		c.Next()
	}
}

// RequireUser reads the caller identity set by the upstream identity proxy.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity", "code": "UNAUTHORIZED"})
			return
		}
		c.Set(userIDKey, userID)
		c.Request = c.Request.WithContext(logging.ContextWithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// UserID returns the identity stored by RequireUser.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
