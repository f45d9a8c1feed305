// Package metrics exposes Prometheus instruments for dispatch, the event bus and
// scheduled jobs. Every recorder is nil-safe: a nil receiver, or one built without
// a Registerer, silently does nothing, so tests and optional wiring need no stubs.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crowddelivery"

// Dispatch records order transitions and accept-race outcomes.
type Dispatch struct {
	transitions *prometheus.CounterVec
	accepts     *prometheus.CounterVec
	expired     *prometheus.CounterVec
}

// NewDispatch registers the dispatch metrics on reg.
func NewDispatch(reg prometheus.Registerer) *Dispatch {
	if reg == nil {
		return &Dispatch{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "transitions_total",
		Help:      "Order transitions attempted, by action and result.",
	}, []string{"action", "result"})
	accepts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "accepts_total",
		Help:      "Accept attempts by outcome (won or lost).",
	}, []string{"outcome"})
	expired := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatch",
		Name:      "expired_total",
		Help:      "Orders returned to the pool because the accept window closed, by trigger.",
	}, []string{"trigger"})
	reg.MustRegister(transitions, accepts, expired)
	return &Dispatch{transitions: transitions, accepts: accepts, expired: expired}
}

// IncTransition counts one transition attempt. result is "applied", "rejected" or "error".
func (d *Dispatch) IncTransition(action, result string) {
	if d == nil || d.transitions == nil {
		return
	}
	d.transitions.WithLabelValues(normalizeLabel(action), normalizeLabel(result)).Inc()
}

// IncAccept counts one accept outcome.
func (d *Dispatch) IncAccept(outcome string) {
	if d == nil || d.accepts == nil {
		return
	}
	d.accepts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// AddExpired counts orders reclaimed by trigger ("timer" or "sweep").
func (d *Dispatch) AddExpired(trigger string, n int) {
	if d == nil || d.expired == nil || n <= 0 {
		return
	}
	d.expired.WithLabelValues(normalizeLabel(trigger)).Add(float64(n))
}

// Bus records event bus activity.
type Bus struct {
	published   *prometheus.CounterVec
	subscribers prometheus.Gauge
	dropped     prometheus.Counter
}

// NewBus registers the event bus metrics on reg.
func NewBus(reg prometheus.Registerer) *Bus {
	if reg == nil {
		return &Bus{}
	}
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bus",
		Name:      "published_total",
		Help:      "Events published, by event name.",
	}, []string{"event"})
	subscribers := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "bus",
		Name:      "subscribers",
		Help:      "Currently open subscriptions.",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bus",
		Name:      "slow_subscribers_total",
		Help:      "Subscriptions closed because their mailbox overflowed.",
	})
	reg.MustRegister(published, subscribers, dropped)
	return &Bus{published: published, subscribers: subscribers, dropped: dropped}
}

func (b *Bus) IncPublished(event string) {
	if b == nil || b.published == nil {
		return
	}
	b.published.WithLabelValues(normalizeLabel(event)).Inc()
}

func (b *Bus) SubscriberOpened() {
	if b == nil || b.subscribers == nil {
		return
	}
	b.subscribers.Inc()
}

func (b *Bus) SubscriberClosed() {
	if b == nil || b.subscribers == nil {
		return
	}
	b.subscribers.Dec()
}

func (b *Bus) IncDropped() {
	if b == nil || b.dropped == nil {
		return
	}
	b.dropped.Inc()
}

// Jobs records metadata for scheduled jobs.
type Jobs struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewJobs registers the job metrics on reg.
func NewJobs(reg prometheus.Registerer) *Jobs {
	if reg == nil {
		return &Jobs{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "duration_seconds",
		Help:      "Duration of scheduled jobs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "success_total",
		Help:      "Successful job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "job",
		Name:      "failure_total",
		Help:      "Failed job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &Jobs{duration: duration, success: success, failure: failure}
}

// ObserveDuration records the duration for the named job.
func (j *Jobs) ObserveDuration(job string, duration time.Duration) {
	if j == nil || j.duration == nil {
		return
	}
	j.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (j *Jobs) IncSuccess(job string) {
	if j == nil || j.success == nil {
		return
	}
	j.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (j *Jobs) IncFailure(job string) {
	if j == nil || j.failure == nil {
		return
	}
	j.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

// HTTP records API request counts and latencies.
type HTTP struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTP registers the API metrics on reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	if reg == nil {
		return &HTTP{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "API requests by method, route and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "API request durations in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTP{requests: requests, duration: duration}
}

// Observe records one finished request. route is the registered path pattern,
// never the raw URL, to keep label cardinality bounded.
func (h *HTTP) Observe(method, route string, status int, duration time.Duration) {
	if h == nil || h.requests == nil {
		return
	}
	route = normalizeLabel(route)
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.duration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
