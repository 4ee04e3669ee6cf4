package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Monitor collects kiosk activity metrics on a private registry
type Monitor struct {
	registry *prometheus.Registry

	itemsAdded    *prometheus.CounterVec
	ordersPlaced  prometheus.Counter
	checkouts     prometheus.Counter
	revenue       prometheus.Counter
	cancellations prometheus.Counter
	rejected      *prometheus.CounterVec
	ledgerLines   prometheus.Gauge
	billTotals    prometheus.Histogram
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		itemsAdded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiosk_items_added_total",
				Help: "Quantity of dishes added to orders",
			},
			[]string{"dish"},
		),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_orders_placed_total",
			Help: "Orders placed",
		}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_checkouts_total",
			Help: "Completed checkouts",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_revenue_total",
			Help: "Sum of checkout bills",
		}),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiosk_cancellations_total",
			Help: "Order lines cancelled",
		}),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kiosk_rejected_actions_total",
				Help: "User actions rejected by the ordering core",
			},
			[]string{"kind"},
		),
		ledgerLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kiosk_ledger_lines",
			Help: "Lines currently in the order ledger",
		}),
		billTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kiosk_bill_amount",
			Help:    "Distribution of checkout bill totals",
			Buckets: prometheus.LinearBuckets(0, 250, 12),
		}),
	}

	m.registry.MustRegister(
		m.itemsAdded,
		m.ordersPlaced,
		m.checkouts,
		m.revenue,
		m.cancellations,
		m.rejected,
		m.ledgerLines,
		m.billTotals,
	)
	return m
}

// Registry returns the underlying registry
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ItemAdded records qty of dish added to the ledger
func (m *Monitor) ItemAdded(dish string, qty int) {
	m.itemsAdded.WithLabelValues(dish).Add(float64(qty))
}

// OrderPlaced records a placed order
func (m *Monitor) OrderPlaced() {
	m.ordersPlaced.Inc()
}

// CheckedOut records a completed checkout and its bill
func (m *Monitor) CheckedOut(total int) {
	m.checkouts.Inc()
	m.revenue.Add(float64(total))
	m.billTotals.Observe(float64(total))
}

// Cancelled records a cancelled line
func (m *Monitor) Cancelled() {
	m.cancellations.Inc()
}

// Rejected records an action refused with the given error kind
func (m *Monitor) Rejected(kind string) {
	m.rejected.WithLabelValues(kind).Inc()
}

// SetLedgerLines records the current ledger size
func (m *Monitor) SetLedgerLines(n int) {
	m.ledgerLines.Set(float64(n))
}
