// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pantrychef"

// Metrics groups the service's collectors.
type Metrics struct {
	Generations        *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	FallbackRecipes    prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
	RequestCount       *prometheus.CounterVec
	TimersCompleted    prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_generations_total",
			Help:      "Recipe generation requests by outcome.",
		}, []string{"outcome"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_generation_duration_seconds",
			Help:      "Time spent generating a recipe, including the model call.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 45},
		}),
		FallbackRecipes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_recipes_total",
			Help:      "Generations whose model output could not be parsed.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		TimersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cooking_timers_completed_total",
			Help:      "Cooking timers that counted down to zero.",
		}),
	}

	reg.MustRegister(m.Generations, m.GenerationDuration, m.FallbackRecipes, m.RequestDuration, m.RequestCount, m.TimersCompleted)
	return m
}

// ObserveGeneration records one finished generation.
func (m *Metrics) ObserveGeneration(outcome string, d time.Duration) {
	m.Generations.WithLabelValues(outcome).Inc()
	m.GenerationDuration.Observe(d.Seconds())
}
