package llm

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "llm_requests_total",
	Help: "Number of text generation requests by provider and outcome",
}, []string{"provider", "outcome"})

func observe(provider string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrAuth):
		outcome = "auth_error"
	default:
		outcome = "error"
	}
	requestCount.WithLabelValues(provider, outcome).Inc()
}
