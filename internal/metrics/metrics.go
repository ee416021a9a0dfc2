// Package metrics holds the Prometheus instruments exported on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TransactionsCreated counts ledger writes by transaction type.
var TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "ledger",
	Name:      "transactions_created_total",
	Help:      "Total transactions created, by type.",
}, []string{"type"})

// TransactionsAutoClassified counts creates where the classifier
// assigned the category.
var TransactionsAutoClassified = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "ledger",
	Name:      "transactions_auto_classified_total",
	Help:      "Total transactions whose category was assigned by the keyword classifier.",
})

// TransactionsDeleted counts confirmed deletes.
var TransactionsDeleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "ledger",
	Name:      "transactions_deleted_total",
	Help:      "Total transactions removed through the confirmed delete flow.",
})

// JournalLikes counts like toggles on feed posts.
var JournalLikes = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "journal",
	Name:      "like_toggles_total",
	Help:      "Total like toggles on journal entries.",
})

// SharePublishes counts share dispatches by target.
var SharePublishes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "share",
	Name:      "publishes_total",
	Help:      "Total schedule share dispatches, by target.",
}, []string{"target"})

// CacheHits counts month-summary cache hits.
var CacheHits = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "cache",
	Name:      "hits_total",
	Help:      "Total month-summary cache hits.",
})

// CacheMisses counts month-summary cache misses.
var CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "cache",
	Name:      "misses_total",
	Help:      "Total month-summary cache misses.",
})

// HTTPRequestDuration tracks request latency by route and status class.
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "gagyebu",
	Subsystem: "http",
	Name:      "request_duration_ms",
	Help:      "HTTP request latency in milliseconds.",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
}, []string{"method", "status"})

// LoginAttempts counts login outcomes.
var LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gagyebu",
	Subsystem: "auth",
	Name:      "login_attempts_total",
	Help:      "Total login attempts, by outcome.",
}, []string{"outcome"})
