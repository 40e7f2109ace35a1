package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeUpstreamError  = "upstream_error"
	outcomeTransportError = "transport_error"
	outcomeNoCredential   = "no_credential"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_proxy_requests_total",
			Help: "Proxy invocations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	upstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_upstream_errors_total",
			Help: "Non-2xx upstream responses by provider and status code",
		},
		[]string{"provider", "status"},
	)
)
