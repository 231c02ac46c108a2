package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/shared/auth"
	"regportal-backend/internal/shared/server/middleware"
)

func newProbeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/api")
	protected.Use(middleware.Auth())
	protected.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": middleware.UserIDFromContext(c),
			"phone":   middleware.UserPhoneFromContext(c),
		})
	})
	return r
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := newProbeRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	router := newProbeRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := newProbeRouter()

	token, err := auth.SignSession("user-1", "+27820000001", "Lindiwe Dlamini")
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, `"user_id":"user-1"`) || !strings.Contains(body, `"phone":"+27820000001"`) {
		t.Fatalf("unexpected identity payload: %s", body)
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := auth.SignSession("user-1", "", "")
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	router := newProbeRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
