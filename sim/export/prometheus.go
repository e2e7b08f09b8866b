// Package export publishes final run KPIs in the Prometheus text exposition
// format, for pickup by a node_exporter textfile collector.
package export

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/supplychain-sim/sim"
	"github.com/inference-sim/supplychain-sim/sim/trace"
)

const namespace = "supplychain"

// KPICollector bundles the gauges describing one finished run.
type KPICollector struct {
	registry *prometheus.Registry

	FillRate          prometheus.Gauge
	InventoryTurnover prometheus.Gauge
	Backorders        prometheus.Gauge
	TotalCosts        prometheus.Gauge
	AverageInventory  prometheus.Gauge
	Steps             prometheus.Gauge

	Recommendation *prometheus.GaugeVec
	ActionSteps    *prometheus.GaugeVec
}

// NewKPICollector registers the run KPIs against a fresh registry so that
// exported files never carry Go runtime or process collectors.
func NewKPICollector(runID string) (*KPICollector, error) {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"run_id": runID}

	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}

	c := &KPICollector{
		registry:          reg,
		FillRate:          gauge("fill_rate_percent", "Share of customer demand served from retail stock, in percent."),
		InventoryTurnover: gauge("inventory_turnover", "Fulfilled demand divided by average total inventory."),
		Backorders:        gauge("backorders", "Cumulative unmet customer demand at the end of the run."),
		TotalCosts:        gauge("total_costs", "Sum of per-step supply chain costs."),
		AverageInventory:  gauge("average_inventory", "Mean total on-hand inventory across steps."),
		Steps:             gauge("steps", "Number of completed simulation steps."),
		Recommendation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "inventory_recommendation",
			Help:        "Inventory optimizer output over the observed demand history.",
			ConstLabels: constLabels,
		}, []string{"parameter"}),
		ActionSteps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "action_steps",
			Help:        "Steps executed per effective action.",
			ConstLabels: constLabels,
		}, []string{"action"}),
	}

	for _, col := range []prometheus.Collector{
		c.FillRate, c.InventoryTurnover, c.Backorders, c.TotalCosts, c.AverageInventory, c.Steps,
		c.Recommendation, c.ActionSteps,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return c, nil
}

// Observe sets every gauge from a results document.
func (c *KPICollector) Observe(out sim.MetricsOutput) {
	c.FillRate.Set(out.Summary.FillRate)
	c.InventoryTurnover.Set(out.Summary.InventoryTurnover)
	c.Backorders.Set(float64(out.Summary.Backorders))
	c.TotalCosts.Set(out.Summary.TotalCosts.InexactFloat64())
	c.AverageInventory.Set(out.Summary.AverageInventory)
	c.Steps.Set(float64(out.Steps))

	if rec := out.Recommendation; rec != nil {
		c.Recommendation.WithLabelValues("safety_stock").Set(float64(rec.SafetyStock))
		c.Recommendation.WithLabelValues("reorder_point").Set(float64(rec.ReorderPoint))
		c.Recommendation.WithLabelValues("order_quantity").Set(float64(rec.OrderQuantity))
	}
	c.observeTrace(out.Trace)
}

func (c *KPICollector) observeTrace(summary *trace.TraceSummary) {
	if summary == nil {
		return
	}
	for action, n := range summary.ActionCounts {
		c.ActionSteps.WithLabelValues(action).Set(float64(n))
	}
}

// Gatherer exposes the underlying registry.
func (c *KPICollector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile atomically writes the registry contents to path.
func (c *KPICollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

// WriteRunMetrics observes out and writes it to path in one call.
func WriteRunMetrics(out sim.MetricsOutput, path string) error {
	c, err := NewKPICollector(out.RunID)
	if err != nil {
		return err
	}
	c.Observe(out)
	return c.WriteTextfile(path)
}
