package companies_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"carbonchain-backend/internal/bootstrap"
	"carbonchain-backend/internal/shared/config"
)

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCompanyRegisterAndLogin(t *testing.T) {
	router := buildRouter(t)

	resp := postJSON(t, router, "/api/companies/register", gin.H{
		"name":     "GreenSteel Ltd",
		"email":    "ops@greensteel.example",
		"password": "s3cret-pass",
		"industry": "manufacturing",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(strings.ToLower(resp.Body.String()), "password") {
		t.Errorf("register response must not echo password material: %s", resp.Body.String())
	}

	var created struct {
		CompanyID string `json:"companyId"`
		Email     string `json:"email"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if created.CompanyID == "" {
		t.Fatal("expected companyId in register response")
	}

	// Duplicate registration is rejected.
	dup := postJSON(t, router, "/api/companies/register", gin.H{
		"name":     "GreenSteel Ltd",
		"email":    "OPS@greensteel.example",
		"password": "another-pass",
	})
	if dup.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status %d, want 400", dup.Code)
	}

	login := postJSON(t, router, "/api/companies/login", gin.H{
		"email":    "ops@greensteel.example",
		"password": "s3cret-pass",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", login.Code, login.Body.String())
	}

	badLogin := postJSON(t, router, "/api/companies/login", gin.H{
		"email":    "ops@greensteel.example",
		"password": "wrong-pass",
	})
	if badLogin.Code != http.StatusUnauthorized {
		t.Errorf("bad login status %d, want 401", badLogin.Code)
	}
}

func TestCompanyGetNotFound(t *testing.T) {
	router := buildRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/companies/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.Code)
	}
}
