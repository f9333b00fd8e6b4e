package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fx_reserve"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the collectors exposed on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	exchanges       *prometheus.CounterVec
	exchangeVolume  *prometheus.CounterVec
	reversals       *prometheus.CounterVec
	manualMovements *prometheus.CounterVec
	lockWait        prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		exchanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchanges_total",
			Help:      "Exchange transactions processed, by direction and outcome.",
		}, []string{"direction", "outcome"}),
		exchangeVolume: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_paid_out_total",
			Help:      "Net amount handed to customers, by currency.",
		}, []string{"currency"}),
		reversals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reversals_total",
			Help:      "Exchange reversals, by outcome.",
		}, []string{"outcome"}),
		manualMovements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manual_movements_total",
			Help:      "Restocks, deposits and adjustments, by type and outcome.",
		}, []string{"type", "outcome"}),
		lockWait: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reserve_lock_wait_seconds",
			Help:      "Time spent waiting for in-process reserve locks.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// ObserveExchange counts one processed exchange.
func (m *Metrics) ObserveExchange(direction string, err error) {
	if m == nil {
		return
	}
	m.exchanges.WithLabelValues(direction, outcome(err)).Inc()
}

// AddPaidOut adds a paid-out amount for a currency.
func (m *Metrics) AddPaidOut(currency string, amount float64) {
	if m == nil {
		return
	}
	m.exchangeVolume.WithLabelValues(currency).Add(amount)
}

// ObserveReversal counts one reversal attempt.
func (m *Metrics) ObserveReversal(err error) {
	if m == nil {
		return
	}
	m.reversals.WithLabelValues(outcome(err)).Inc()
}

// ObserveManualMovement counts one manual movement attempt.
func (m *Metrics) ObserveManualMovement(movementType string, err error) {
	if m == nil {
		return
	}
	m.manualMovements.WithLabelValues(movementType, outcome(err)).Inc()
}

// ObserveLockWait records how long a caller waited for reserve locks.
func (m *Metrics) ObserveLockWait(seconds float64) {
	if m == nil {
		return
	}
	m.lockWait.Observe(seconds)
}

// ObserveHTTP records one served request.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
