// Tracks run-wide supply chain performance: fill rate, backorders,
// inventory turnover and accumulated cost.

package sim

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// PerformanceMetrics accumulates demand, fulfilment, inventory and cost
// observations for the lifetime of one run. It is owned by the Simulator.
type PerformanceMetrics struct {
	TotalDemand     int             // Customer demand observed across all steps
	FulfilledDemand int             // Units actually served from retail stock
	Backorders      int             // Cumulative demand - fulfilled; may go negative when backlog is cleared
	TotalCosts      decimal.Decimal // Sum of per-step costs

	InventoryHistory []int // Total on-hand inventory per snapshot
}

// MetricsSummary is the derived snapshot returned by CalculateMetrics.
// All fields except Backorders are rounded to two decimal places.
type MetricsSummary struct {
	FillRate          float64         `json:"fill_rate"`
	InventoryTurnover float64         `json:"inventory_turnover"`
	Backorders        int             `json:"backorders"`
	TotalCosts        decimal.Decimal `json:"total_costs"`
	AverageInventory  float64         `json:"average_inventory"`
}

func NewPerformanceMetrics() *PerformanceMetrics {
	return &PerformanceMetrics{TotalCosts: decimal.Zero}
}

// UpdateFillRate records one step's customer demand and fulfilment.
// Fulfilment above demand (backlog being served) drives Backorders down
// without clamping.
func (m *PerformanceMetrics) UpdateFillRate(demand, fulfilled int) {
	m.TotalDemand += demand
	m.FulfilledDemand += fulfilled
	m.Backorders += demand - fulfilled
}

// UpdateInventory appends the summed inventory across the given tiers.
func (m *PerformanceMetrics) UpdateInventory(levels map[string]int) {
	total := 0
	for _, v := range levels {
		total += v
	}
	m.InventoryHistory = append(m.InventoryHistory, total)
}

func (m *PerformanceMetrics) UpdateCosts(cost decimal.Decimal) {
	m.TotalCosts = m.TotalCosts.Add(cost)
}

// CalculateMetrics derives the summary without mutating the accumulator.
//
// Average inventory is 1 when no snapshot has been recorded, so turnover
// then equals fulfilled demand; turnover is 0 only for a non-positive average.
func (m *PerformanceMetrics) CalculateMetrics() MetricsSummary {
	fillRate := 0.0
	if m.TotalDemand > 0 {
		fillRate = float64(m.FulfilledDemand) / float64(m.TotalDemand) * 100
	}

	avgInventory := 1.0
	if len(m.InventoryHistory) > 0 {
		avgInventory = CalculateMean(m.InventoryHistory)
	}

	turnover := 0.0
	if avgInventory > 0 {
		turnover = float64(m.FulfilledDemand) / avgInventory
	}

	return MetricsSummary{
		FillRate:          round2(fillRate),
		InventoryTurnover: round2(turnover),
		Backorders:        m.Backorders,
		TotalCosts:        m.TotalCosts.Round(2),
		AverageInventory:  round2(avgInventory),
	}
}

// Print writes the summary as an aligned block under a fixed header.
func (s MetricsSummary) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Fill Rate            : %.2f%%\n", s.FillRate)
	fmt.Fprintf(w, "Inventory Turnover   : %.2f\n", s.InventoryTurnover)
	fmt.Fprintf(w, "Backorders           : %d\n", s.Backorders)
	fmt.Fprintf(w, "Total Costs          : %s\n", s.TotalCosts.StringFixed(2))
	fmt.Fprintf(w, "Average Inventory    : %.2f\n", s.AverageInventory)
}
