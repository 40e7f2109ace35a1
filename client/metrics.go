package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	reasonFetch  = "fetch_failed"
	reasonDecode = "decode_failed"
	reasonEmpty  = "empty_result"
)

var mockFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "listing_mock_fallbacks_total",
		Help: "Listing requests served from the mock catalog, by provider and reason",
	},
	[]string{"provider", "reason"},
)
