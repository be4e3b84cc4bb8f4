package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labelValue string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if labelValue == "" || matchesLabel(metric, labelValue) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchesLabel(metric *dto.Metric, value string) bool {
	for _, label := range metric.GetLabel() {
		if label.GetValue() == value {
			return true
		}
	}
	return false
}

func TestPosMetricsCounts(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewPosMetrics(reg)

	m.IncConfirmed("quick_add")
	m.IncConfirmed("quick_add")
	m.IncLine("merged")
	m.IncClear()

	if got := counterValue(t, reg, "pos_compositions_confirmed_total", "quick_add"); got != 2 {
		t.Fatalf("unexpected confirmed count: %f", got)
	}
	if got := counterValue(t, reg, "pos_cart_lines_total", "merged"); got != 1 {
		t.Fatalf("unexpected line count: %f", got)
	}
	if got := counterValue(t, reg, "pos_cart_clears_total", ""); got != 1 {
		t.Fatalf("unexpected clear count: %f", got)
	}
}

func TestPosMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *PosMetrics
	m.IncConfirmed("composed")
	m.IncLine("created")
	m.IncClear()

	empty := NewPosMetrics(nil)
	empty.IncConfirmed("")
	empty.IncLine("")
	empty.IncClear()
}
