package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/listing-gateway/internal/config"
)

func newTestGateway(t *testing.T, cfg *config.Config) *Gateway {
	t.Helper()
	return New(cfg, zerolog.Nop())
}

func decodeError(t *testing.T, body []byte) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestForwardMissingCredential(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{IDXAPIKey: "idx-key"})
	g.providers[config.ProviderSpark].baseURL = srv.URL

	res := g.Forward(context.Background(), config.ProviderSpark, "listings", nil)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Spark API key not configured", decodeError(t, res.Body).Error)
	assert.Equal(t, int64(0), calls.Load(), "no outbound call may be attempted")
}

func TestForwardRelaysSuccess(t *testing.T) {
	payload := `{"D":{"Success":true,"Results":[{"Id":"abc"}]}}`
	var gotPath, gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("X-SparkApi-User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{SparkAPIKey: "spark-key"})
	g.providers[config.ProviderSpark].baseURL = srv.URL

	res := g.Forward(context.Background(), config.ProviderSpark, "listings", url.Values{"city": {"Orlando"}})
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, payload, string(res.Body), "body relayed unchanged")
	assert.Equal(t, "/listings", gotPath)
	assert.Equal(t, "Bearer spark-key", gotAuth)
	assert.Equal(t, "RealEstate360/1.0", gotAgent)
}

func TestForwardNon2xxRelaysStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("access denied"))
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{IDXAPIKey: "idx-key"})
	g.providers[config.ProviderIDX].baseURL = srv.URL

	res := g.Forward(context.Background(), config.ProviderIDX, "clients/featured", nil)
	assert.Equal(t, http.StatusForbidden, res.Status)
	e := decodeError(t, res.Body)
	assert.Equal(t, "IDX API error", e.Error)
	assert.Equal(t, "access denied", e.Details)
}

func TestForwardNon200SuccessNormalizedTo200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{SparkAPIKey: "k"})
	g.providers[config.ProviderSpark].baseURL = srv.URL

	res := g.Forward(context.Background(), config.ProviderSpark, "listings", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"ok":true}`, string(res.Body))
}

func TestForwardTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := newTestGateway(t, &config.Config{SparkAPIKey: "k"})
	g.providers[config.ProviderSpark].baseURL = srv.URL

	res := g.Forward(context.Background(), config.ProviderSpark, "listings", nil)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	e := decodeError(t, res.Body)
	assert.Equal(t, "Failed to fetch from Spark API", e.Error)
	assert.NotEmpty(t, e.Details)
}

func TestForwardInvalidUpstreamJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{SparkAPIKey: "k"})
	g.providers[config.ProviderSpark].baseURL = srv.URL

	res := g.Forward(context.Background(), config.ProviderSpark, "listings", nil)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, "Failed to fetch from Spark API", decodeError(t, res.Body).Error)
}

func TestForwardIDXPathAliases(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		assert.Equal(t, "idx-key", r.Header.Get("accesskey"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "json", r.Header.Get("outputtype"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{IDXAPIKey: "idx-key"})
	g.providers[config.ProviderIDX].baseURL = srv.URL

	for _, requested := range []string{"clients/listings", "properties", "clients/featured"} {
		res := g.Forward(context.Background(), config.ProviderIDX, requested, nil)
		assert.Equal(t, http.StatusOK, res.Status)
	}
	// Both legacy aliases and the direct path land on the featured feed,
	// rewritten exactly once.
	assert.Equal(t, []string{"/clients/featured", "/clients/featured", "/clients/featured"}, paths)

	// Non-aliased paths forward verbatim.
	res := g.Forward(context.Background(), config.ProviderIDX, "clients/accounttype", nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "/clients/accounttype", paths[len(paths)-1])
}

func TestForwardUnknownProvider(t *testing.T) {
	g := newTestGateway(t, &config.Config{SparkAPIKey: "k"})
	res := g.Forward(context.Background(), "zillow", "listings", nil)
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestForwardQueryParamsPassThrough(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := newTestGateway(t, &config.Config{SparkAPIKey: "k"})
	g.providers[config.ProviderSpark].baseURL = srv.URL

	q := url.Values{"minPrice": {"500000"}, "bedrooms": {"3"}}
	g.Forward(context.Background(), config.ProviderSpark, "listings", q)
	assert.Equal(t, "500000", gotQuery.Get("minPrice"))
	assert.Equal(t, "3", gotQuery.Get("bedrooms"))
}
