package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultServiceLevel is the target probability of not stocking out during lead time.
const DefaultServiceLevel = 0.95

// SafetyStockOptimizer sizes the buffer held against demand variability.
type SafetyStockOptimizer struct {
	ServiceLevel float64 // in (0, 1)
}

// CalculateSafetyStock returns z·σ·√leadTime truncated to an integer and
// floored at zero, where z is the standard normal quantile of the service
// level and σ the sample standard deviation of history. Fewer than two
// observations give 0.
func (o SafetyStockOptimizer) CalculateSafetyStock(history []int, leadTime float64) int {
	if len(history) < 2 {
		return 0
	}
	z := distuv.UnitNormal.Quantile(o.ServiceLevel)
	sigma := stat.StdDev(toFloats(history), nil)
	return max(int(z*sigma*math.Sqrt(leadTime)), 0)
}

// ReorderPoint is the stock level at which a replenishment order is placed.
func ReorderPoint(demandRate, leadTime float64, safetyStock int) int {
	return int(demandRate*leadTime + float64(safetyStock))
}

// Recommendation is the output of InventoryOptimizer.Optimize.
type Recommendation struct {
	SafetyStock   int `json:"safety_stock"`
	ReorderPoint  int `json:"reorder_point"`
	OrderQuantity int `json:"order_quantity"`
}

// InventoryOptimizer derives safety stock, reorder point and economic order
// quantity from a demand history.
type InventoryOptimizer struct {
	safetyStock SafetyStockOptimizer
	orderCost   float64
	holdingCost float64
}

// NewInventoryOptimizer reads the service level from the inventory section
// and the order and holding costs from the costs section. Raw material cost
// stands in for the per-order cost.
func NewInventoryOptimizer(cfg *Config) *InventoryOptimizer {
	serviceLevel := DefaultServiceLevel
	if v, ok := cfg.Inventory["service_level"]; ok {
		serviceLevel = v
	}
	return &InventoryOptimizer{
		safetyStock: SafetyStockOptimizer{ServiceLevel: serviceLevel},
		orderCost:   cfg.Costs.Float("raw_material"),
		holdingCost: cfg.Costs.Float("holding"),
	}
}

func (o *InventoryOptimizer) Optimize(history []int, leadTime float64) Recommendation {
	ss := o.safetyStock.CalculateSafetyStock(history, leadTime)

	avgDemand := float64(DefaultForecastDemand)
	if len(history) > 0 {
		avgDemand = stat.Mean(toFloats(history), nil)
	}

	return Recommendation{
		SafetyStock:   ss,
		ReorderPoint:  ReorderPoint(avgDemand, leadTime, ss),
		OrderQuantity: o.economicOrderQuantity(avgDemand),
	}
}

// economicOrderQuantity is sqrt(2·D·S/H) truncated and floored at 1.
func (o *InventoryOptimizer) economicOrderQuantity(avgDemand float64) int {
	if o.holdingCost <= 0 {
		return 1
	}
	eoq := math.Sqrt(2 * avgDemand * o.orderCost / o.holdingCost)
	return max(int(eoq), 1)
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
