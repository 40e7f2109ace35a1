// Package gateway forwards listing queries to the upstream real-estate
// providers. Credentials are attached server-side and never reach the
// browser. The gateway is stateless: one invocation issues at most one
// outbound call, with no retry and no cross-request coordination.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourorg/listing-gateway/internal/config"
)

const maxBodyBytes = 4 << 20 // guard against runaway upstream payloads

type provider struct {
	name    string // route segment
	display string // name used in error bodies
	baseURL string
	key     string
	// aliases maps legacy path segments to the endpoint that actually
	// serves them. Applied by direct lookup, so a rewrite can never recurse.
	aliases    map[string]string
	setHeaders func(h http.Header, key string)
}

// Result is a fully shaped HTTP response: status plus a JSON body.
type Result struct {
	Status int
	Body   []byte
}

type Gateway struct {
	providers map[string]*provider
	httpc     *http.Client
	log       zerolog.Logger
}

func New(cfg *config.Config, log zerolog.Logger) *Gateway {
	providers := map[string]*provider{
		config.ProviderSpark: {
			name:    config.ProviderSpark,
			display: "Spark",
			baseURL: "https://sparkapi.com/v1",
			key:     cfg.SparkAPIKey,
			setHeaders: func(h http.Header, key string) {
				h.Set("Authorization", "Bearer "+key)
				h.Set("X-SparkApi-User-Agent", "RealEstate360/1.0")
				h.Set("Content-Type", "application/json")
			},
		},
		config.ProviderIDX: {
			name:    config.ProviderIDX,
			display: "IDX",
			baseURL: "https://api.idxbroker.com",
			key:     cfg.IDXAPIKey,
			// IDX cannot serve full inventory; both legacy aliases land on
			// the curated featured feed.
			aliases: map[string]string{
				"clients/listings": "clients/featured",
				"properties":       "clients/featured",
			},
			setHeaders: func(h http.Header, key string) {
				// The legacy API requires form-encoded content type even on
				// bodyless GETs.
				h.Set("Content-Type", "application/x-www-form-urlencoded")
				h.Set("accesskey", key)
				h.Set("outputtype", "json")
			},
		},
	}
	return &Gateway{
		providers: providers,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

// Forward proxies one request to the named provider. Every path returns a
// well-formed Result; upstream failures never escape as errors.
func (g *Gateway) Forward(ctx context.Context, providerName, upstreamPath string, query url.Values) Result {
	p, ok := g.providers[providerName]
	if !ok {
		return errorResult(http.StatusNotFound, "Unknown provider: "+providerName, "")
	}
	if p.key == "" {
		requestsTotal.WithLabelValues(p.name, outcomeNoCredential).Inc()
		g.log.Error().Str("provider", p.name).Msg("api key not configured")
		return errorResult(http.StatusInternalServerError, p.display+" API key not configured", "")
	}

	path := strings.TrimPrefix(upstreamPath, "/")
	if target, aliased := p.aliases[path]; aliased {
		path = target
	}
	u := p.baseURL + "/" + path
	if enc := query.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		requestsTotal.WithLabelValues(p.name, outcomeTransportError).Inc()
		return errorResult(http.StatusInternalServerError, fetchFailure(p.display), err.Error())
	}
	p.setHeaders(req.Header, p.key)

	resp, err := g.httpc.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(p.name, outcomeTransportError).Inc()
		g.log.Error().Err(err).Str("provider", p.name).Str("url", u).Msg("upstream request failed")
		return errorResult(http.StatusInternalServerError, fetchFailure(p.display), err.Error())
	}
	defer resp.Body.Close()

	body, err := readAllLimit(resp.Body, maxBodyBytes)
	if err != nil {
		requestsTotal.WithLabelValues(p.name, outcomeTransportError).Inc()
		return errorResult(http.StatusInternalServerError, fetchFailure(p.display), err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		requestsTotal.WithLabelValues(p.name, outcomeUpstreamError).Inc()
		upstreamErrorsTotal.WithLabelValues(p.name, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		g.log.Warn().Str("provider", p.name).Int("status", resp.StatusCode).Msg("upstream error")
		return errorResult(resp.StatusCode, p.display+" API error", string(body))
	}

	if !json.Valid(body) {
		requestsTotal.WithLabelValues(p.name, outcomeTransportError).Inc()
		return errorResult(http.StatusInternalServerError, fetchFailure(p.display), "invalid JSON from upstream")
	}

	requestsTotal.WithLabelValues(p.name, outcomeOK).Inc()
	g.log.Debug().Str("provider", p.name).Str("path", path).Int("bytes", len(body)).Msg("relayed upstream response")
	return Result{Status: http.StatusOK, Body: body}
}

func fetchFailure(display string) string {
	return "Failed to fetch from " + display + " API"
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func errorResult(status int, msg, details string) Result {
	b, _ := json.Marshal(errorBody{Error: msg, Details: details})
	return Result{Status: status, Body: b}
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
