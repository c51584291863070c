package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckAPIKey(t *testing.T) {
	hash, err := HashAPIKey("s3cret-admin-key")
	if err != nil {
		t.Fatalf("HashAPIKey: %v", err)
	}
	if !CheckAPIKey("s3cret-admin-key", hash) {
		t.Fatal("key should match its hash")
	}
	if CheckAPIKey("wrong", hash) {
		t.Fatal("wrong key matched")
	}
	if CheckAPIKey("s3cret-admin-key", "not-a-hash") {
		t.Fatal("malformed hash matched")
	}
	if _, err := HashAPIKey(""); err == nil {
		t.Fatal("empty key should be rejected")
	}
}

func testHash(t *testing.T, key string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	guard := NewAdminGuard(testHash(t, "admin-key"))
	r := gin.New()
	r.GET("/admin", guard.RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"header key", AdminKeyHeader, "admin-key", http.StatusNoContent},
		{"bearer key", "Authorization", "Bearer admin-key", http.StatusNoContent},
		{"wrong key", AdminKeyHeader, "nope", http.StatusUnauthorized},
		{"missing key", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAdminGuardWithoutHashRejectsEverything(t *testing.T) {
	if NewAdminGuard("").Check("anything") {
		t.Fatal("guard without a configured hash must reject")
	}
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireUser(), func(c *gin.Context) { c.String(http.StatusOK, UserID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(UserIDHeader, "user-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "user-42" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing identity status = %d, want 401", w.Code)
	}
}
