package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PosMetrics records counters for basket activity on the register.
type PosMetrics struct {
	confirmed   *prometheus.CounterVec
	linesAdded  *prometheus.CounterVec
	cartsClears prometheus.Counter
}

// NewPosMetrics registers the POS metrics on the provided registerer.
func NewPosMetrics(reg prometheus.Registerer) *PosMetrics {
	if reg == nil {
		return &PosMetrics{}
	}
	confirmed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_compositions_confirmed_total",
		Help: "Confirmed product compositions added to a basket.",
	}, []string{"path"})
	linesAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_cart_lines_total",
		Help: "Basket line mutations by outcome (created or merged).",
	}, []string{"outcome"})
	clears := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pos_cart_clears_total",
		Help: "Explicit basket clears.",
	})
	reg.MustRegister(confirmed, linesAdded, clears)
	return &PosMetrics{
		confirmed:   confirmed,
		linesAdded:  linesAdded,
		cartsClears: clears,
	}
}

// IncConfirmed counts a confirmed composition; path is "composed" or "quick_add".
func (p *PosMetrics) IncConfirmed(path string) {
	if p == nil || p.confirmed == nil {
		return
	}
	p.confirmed.WithLabelValues(normalizeLabel(path)).Inc()
}

// IncLine counts a ledger line mutation; outcome is "created" or "merged".
func (p *PosMetrics) IncLine(outcome string) {
	if p == nil || p.linesAdded == nil {
		return
	}
	p.linesAdded.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncClear counts an explicit basket clear.
func (p *PosMetrics) IncClear() {
	if p == nil || p.cartsClears == nil {
		return
	}
	p.cartsClears.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
