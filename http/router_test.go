package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/listing-gateway/internal/config"
)

func testRouter(cfg *config.Config) http.Handler {
	return NewRouter(cfg, zerolog.Nop())
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(&config.Config{SparkAPIKey: "spark-key", Environment: "development"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string            `json:"status"`
		Timestamp string            `json:"timestamp"`
		Services  map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "configured", body.Services["spark"])
	assert.Equal(t, "not configured", body.Services["idx"])
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestRootEndpoint(t *testing.T) {
	r := testRouter(&config.Config{AllowedOrigins: []string{"http://localhost:8080"}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "endpoints")
	assert.Contains(t, body, "name")
}

func TestOptionsAnyPathReturns200(t *testing.T) {
	r := testRouter(&config.Config{Environment: "development"})

	for _, path := range []string{"/", "/health", "/metrics", "/api/spark/listings", "/api/idx/clients/featured", "/nope"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "OPTIONS %s", path)
		assert.Empty(t, rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r := testRouter(&config.Config{Environment: "development"})

	req := httptest.NewRequest(http.MethodOptions, "/api/spark/listings", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSBlocksUnlistedOriginInProduction(t *testing.T) {
	r := testRouter(&config.Config{
		Environment:    "production",
		AllowedOrigins: []string{"https://realestate360.realtor"},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestProxyMissingCredential(t *testing.T) {
	r := testRouter(&config.Config{Environment: "development"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spark/listings", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Spark API key not configured", body.Error)
}

func TestProxyUnknownProvider(t *testing.T) {
	r := testRouter(&config.Config{Environment: "development"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/zillow/listings", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(&config.Config{Environment: "development"})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
