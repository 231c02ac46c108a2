package regbodies_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/regbodies"
)

func TestListRegulatoryBodies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler, err := regbodies.NewHandler()
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	handler.RegisterRoutes(r.Group("/api"))

	req := httptest.NewRequest(http.MethodGet, "/api/regulatory-bodies", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var out struct {
		RegulatoryBodies []regbodies.Body `json:"regulatory_bodies"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.RegulatoryBodies) == 0 {
		t.Fatalf("expected a non-empty listing")
	}

	found := false
	for _, body := range out.RegulatoryBodies {
		if body.Abbreviation == "CIPC" {
			found = true
			if body.Name == "" || body.Website == "" {
				t.Fatalf("incomplete entry: %+v", body)
			}
		}
	}
	if !found {
		t.Fatalf("expected CIPC in the listing")
	}
}
