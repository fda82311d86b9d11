package optimizations_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"carbonchain-backend/internal/bootstrap"
	"carbonchain-backend/internal/shared/config"
)

func buildRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// No GEMINI_API_KEY: the placeholder client stands in for the
	// provider and every generate call reports the missing key.
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

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func createProductWithStage(t *testing.T, router *gin.Engine) string {
	t.Helper()

	resp := doJSON(t, router, http.MethodPost, "/api/companies/register", gin.H{
		"name":     "AgroChem Pvt",
		"email":    "plant@agrochem.example",
		"password": "pass-123456",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", resp.Code, resp.Body.String())
	}
	var company struct {
		CompanyID string `json:"companyId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &company); err != nil {
		t.Fatalf("decode company: %v", err)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"companyId":           company.CompanyID,
		"name":                "Fertilizer 50kg",
		"yearlyNetZeroTarget": 120.0,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create product status %d: %s", resp.Code, resp.Body.String())
	}
	var product struct {
		ProductID string `json:"productId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &product); err != nil {
		t.Fatalf("decode product: %v", err)
	}

	resp = doJSON(t, router, http.MethodPost, "/api/supply-chain", gin.H{
		"productId":     product.ProductID,
		"stageName":     "Raw Materials",
		"transportMode": "truck",
		"distanceKm":    320.0,
		"energySource":  "diesel",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create node status %d: %s", resp.Code, resp.Body.String())
	}
	return product.ProductID
}

func TestGeminiRouteReportsMissingKey(t *testing.T) {
	router := buildRouter(t)
	productID := createProductWithStage(t, router)

	resp := doJSON(t, router, http.MethodGet, "/api/optimizations/"+productID+"/gemini", nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Code != "provider_not_configured" {
		t.Errorf("error code %q, want provider_not_configured", body.Code)
	}
}

func TestManualInsightLifecycle(t *testing.T) {
	router := buildRouter(t)
	productID := createProductWithStage(t, router)

	resp := doJSON(t, router, http.MethodPost, "/api/optimization", gin.H{
		"productId":          productID,
		"stageName":          "Packaging",
		"recommendationType": "packaging",
		"recommendationText": "switch to recycled cartons",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create insight status %d: %s", resp.Code, resp.Body.String())
	}
	var insight struct {
		InsightID   string `json:"insightId"`
		GeneratedBy string `json:"generatedBy"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &insight); err != nil {
		t.Fatalf("decode insight: %v", err)
	}
	if insight.GeneratedBy != "manual" {
		t.Errorf("generatedBy %q, want manual", insight.GeneratedBy)
	}

	resp = doJSON(t, router, http.MethodGet, "/api/optimizations", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("recent status %d: %s", resp.Code, resp.Body.String())
	}
	var recent struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &recent); err != nil {
		t.Fatalf("decode recent: %v", err)
	}
	if recent.Count != 1 {
		t.Errorf("recent count %d, want 1", recent.Count)
	}

	resp = doJSON(t, router, http.MethodDelete, "/api/optimization/"+insight.InsightID, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete status %d: %s", resp.Code, resp.Body.String())
	}
	resp = doJSON(t, router, http.MethodGet, "/api/optimization/"+insight.InsightID, nil)
	if resp.Code != http.StatusNotFound {
		t.Errorf("get after delete status %d, want 404", resp.Code)
	}
}
