package applications_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/bootstrap"
	"regportal-backend/internal/shared/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
	}
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login",
		bytes.NewBufferString(`{"phone":"+2341234567890","pin":"1234"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: expected status 200, got %d", resp.Code)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func TestSubmitAndListApplications(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router)

	formData := `{"businessType":"Private Company (Pty Ltd)","directors":[{"name":"Thabo"},{"name":"Lindiwe"}]}`
	payload := `{"company":"Ubuntu Tech Solutions","country":"ZA","form_data":` + formData + `}`

	req := httptest.NewRequest(http.MethodPost, "/api/applications", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("submit: expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created struct {
		Success       bool   `json:"success"`
		ApplicationID string `json:"application_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	if !created.Success || created.ApplicationID == "" {
		t.Fatalf("expected success with application_id, got %+v", created)
	}

	reqList := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	reqList.Header.Set("Authorization", "Bearer "+token)
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("list: expected status 200, got %d", respList.Code)
	}
	var listed struct {
		Applications []struct {
			ID       string          `json:"id"`
			Company  string          `json:"company"`
			Country  string          `json:"country"`
			Status   string          `json:"status"`
			FormData json.RawMessage `json:"form_data"`
		} `json:"applications"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Applications) != 1 {
		t.Fatalf("expected 1 application, got %d", len(listed.Applications))
	}
	got := listed.Applications[0]
	if got.ID != created.ApplicationID || got.Company != "Ubuntu Tech Solutions" || got.Status != "pending" {
		t.Fatalf("unexpected application: %+v", got)
	}

	var want, have any
	if err := json.Unmarshal([]byte(formData), &want); err != nil {
		t.Fatalf("unmarshal want: %v", err)
	}
	if err := json.Unmarshal(got.FormData, &have); err != nil {
		t.Fatalf("unmarshal have: %v", err)
	}
	wantJSON, _ := json.Marshal(want)
	haveJSON, _ := json.Marshal(have)
	if !bytes.Equal(wantJSON, haveJSON) {
		t.Fatalf("form data changed:\nwant %s\ngot  %s", wantJSON, haveJSON)
	}
}

func TestApplicationsRequireSession(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/applications", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}
