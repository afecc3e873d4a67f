package providers

import (
	"net/http"
	"strings"
	"time"
)

// transportErrorStatus is the synthetic status recorded when the request
// never produced a response (DNS failure, timeout, connection refused).
const transportErrorStatus = 599

// metricsTransport instruments an http.RoundTripper with request
// counters and duration histograms.
type metricsTransport struct {
	inner   http.RoundTripper
	metrics MetricsProviderInterface
}

func NewMetricsTransport(metrics MetricsProviderInterface, inner http.RoundTripper) http.RoundTripper {
	if inner == nil {
		inner = http.DefaultTransport
	}
	return &metricsTransport{inner: inner, metrics: metrics}
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	endpoint := normalizeEndpoint(req.URL.Path)

	resp, err := t.inner.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.metrics.IncRequestsTotal(endpoint, transportErrorStatus)
		t.metrics.ObserveRequestDuration(endpoint, duration)
		return nil, err
	}

	t.metrics.IncRequestsTotal(endpoint, resp.StatusCode)
	t.metrics.ObserveRequestDuration(endpoint, duration)
	return resp, nil
}

// normalizeEndpoint collapses Trello object ids in a path to ":id" so
// per-card URLs do not explode metric label cardinality.
func normalizeEndpoint(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if isHexID(part) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func isHexID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
