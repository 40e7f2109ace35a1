// Package client is the listing orchestration every page calls: it queries
// the proxy gateway, normalizes the payload, and substitutes the mock
// catalog when live data cannot be obtained. Calls always produce a usable
// result; no failure reaches the caller as an error.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/yourorg/listing-gateway/idx"
	"github.com/yourorg/listing-gateway/listing"
	"github.com/yourorg/listing-gateway/spark"
)

const maxBodyBytes = 4 << 20

type Client struct {
	baseURL string
	httpc   *retryablehttp.Client
	log     zerolog.Logger
}

// New builds a client against the gateway at baseURL. Retries here target
// our own gateway, not the upstream providers; the gateway itself never
// retries upstream.
func New(baseURL string, log zerolog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 100 * time.Millisecond
	rc.RetryWaitMax = 900 * time.Millisecond
	rc.RetryMax = 2
	rc.Logger = nil
	rc.HTTPClient.Timeout = 6 * time.Second

	return &Client{baseURL: baseURL, httpc: rc, log: log}
}

// GetListings fetches MLS listings through the gateway. Filters are
// delegated upstream; only the mock fallback filters locally, so a filter
// matching nothing in the catalog can still yield an empty slice. There is
// never an error.
func (c *Client) GetListings(ctx context.Context, f *listing.Filter) []listing.Property {
	params := url.Values{}
	if f != nil {
		setParam(params, "city", f.Location)
		setParam(params, "minPrice", f.MinPrice)
		setParam(params, "maxPrice", f.MaxPrice)
		setParam(params, "bedrooms", f.Beds)
		setParam(params, "bathrooms", f.Baths)
	}

	raw, err := c.get(ctx, "/api/spark/listings", params)
	if err != nil {
		return c.fallback(f, "spark", reasonFetch, err)
	}
	props, err := spark.MapListings(raw)
	if err != nil {
		return c.fallback(f, "spark", reasonDecode, err)
	}
	if len(props) == 0 {
		return c.fallback(f, "spark", reasonEmpty, nil)
	}
	return props
}

// GetFeaturedListings fetches the legacy broker's curated feed. The feed is
// structurally a subset of market inventory, so sparse results are expected;
// only a failure or an empty feed triggers the mock catalog.
func (c *Client) GetFeaturedListings(ctx context.Context) []listing.Property {
	raw, err := c.get(ctx, "/api/idx/clients/featured", nil)
	if err != nil {
		return c.fallback(nil, "idx", reasonFetch, err)
	}
	props, err := idx.MapProperties(raw)
	if err != nil {
		return c.fallback(nil, "idx", reasonDecode, err)
	}
	if len(props) == 0 {
		return c.fallback(nil, "idx", reasonEmpty, nil)
	}
	return props
}

// GetListing fetches a single listing by id. Unlike the batch calls this
// one may report absence: a detail page can 404 where a grid cannot.
func (c *Client) GetListing(ctx context.Context, id string) (*listing.Property, bool) {
	raw, err := c.get(ctx, "/api/spark/listings/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, false
	}
	props, err := spark.MapListings(raw)
	if err != nil || len(props) == 0 {
		return nil, false
	}
	return &props[0], true
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if params != nil {
		if enc := params.Encode(); enc != "" {
			u += "?" + enc
		}
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := readAllLimit(resp.Body, maxBodyBytes)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) fallback(f *listing.Filter, provider, reason string, err error) []listing.Property {
	mockFallbacksTotal.WithLabelValues(provider, reason).Inc()
	evt := c.log.Warn().Str("provider", provider).Str("reason", reason)
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg("serving mock catalog")
	return listing.FilterProperties(listing.MockCatalog(), f)
}

func setParam(params url.Values, key, val string) {
	if val != "" {
		params.Set(key, val)
	}
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
