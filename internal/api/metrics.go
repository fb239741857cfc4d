package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var moderationCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "moderation_results_total",
	Help: "Number of moderated messages by resulting status",
}, []string{"status"})

var fraudCheckCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "fraud_checks_total",
	Help: "Number of fraud checks by verdict",
}, []string{"status"})

var suggestionLogErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "suggestion_log_errors_total",
	Help: "Number of price suggestions that could not be written to the report log",
})
