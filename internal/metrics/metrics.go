package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EntriesEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberqueue_entries_enqueued_total",
		Help: "Queue entries created, by source",
	}, []string{"source"})

	Completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberqueue_completions_total",
		Help: "Completed queue entries by payment method",
	}, []string{"payment_method"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberqueue_transitions_total",
		Help: "Lifecycle transitions by action and result",
	}, []string{"action", "result"})

	EffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "barberqueue_effect_failures_total",
		Help: "Best-effort side effects that failed after every retry",
	}, []string{"effect"})

	OrderConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberqueue_order_conflicts_total",
		Help: "Order key collisions retried on enqueue or undo",
	})

	LiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "barberqueue_live_subscribers",
		Help: "Open live waiting-list subscriptions",
	})

	LiveDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberqueue_live_snapshots_replaced_total",
		Help: "Undelivered snapshots replaced by a newer one",
	})

	AuditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberqueue_audit_dropped_total",
		Help: "Audit events dropped because the queue was full",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
