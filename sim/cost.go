package sim

import "github.com/shopspring/decimal"

// CostRates are the per-unit prices applied to each step's flows and stock.
type CostRates struct {
	RawMaterial   decimal.Decimal
	Manufacturing decimal.Decimal
	Distribution  decimal.Decimal
	Holding       decimal.Decimal
	Backorder     decimal.Decimal
}

// CostRatesFromConfig reads the costs section.
func CostRatesFromConfig(cfg *Config) CostRates {
	return CostRates{
		RawMaterial:   decimal.NewFromFloat(cfg.Costs.Float("raw_material")),
		Manufacturing: decimal.NewFromFloat(cfg.Costs.Float("manufacturing")),
		Distribution:  decimal.NewFromFloat(cfg.Costs.Float("distribution")),
		Holding:       decimal.NewFromFloat(cfg.Costs.Float("holding")),
		Backorder:     decimal.NewFromFloat(cfg.Costs.Float("backorder")),
	}
}

// CostBreakdown splits one step's cost by component.
type CostBreakdown struct {
	RawMaterial   decimal.Decimal `json:"raw_material"`
	Manufacturing decimal.Decimal `json:"manufacturing"`
	Distribution  decimal.Decimal `json:"distribution"`
	Holding       decimal.Decimal `json:"holding"`
	Backorder     decimal.Decimal `json:"backorder"`
}

func (b CostBreakdown) Total() decimal.Decimal {
	return decimal.Sum(b.RawMaterial, b.Manufacturing, b.Distribution, b.Holding, b.Backorder)
}

// CostManager prices each step and keeps an append-only cost history.
type CostManager struct {
	rates      CostRates
	history    []decimal.Decimal
	breakdowns []CostBreakdown
}

func NewCostManager(rates CostRates) *CostManager {
	return &CostManager{rates: rates}
}

// CalculateCosts prices one step: flows at their unit cost, the four tier
// inventories at the holding rate and outstanding backorders at the penalty
// rate. The total is appended to the history.
func (c *CostManager) CalculateCosts(state State, supply, production, distribution int) decimal.Decimal {
	b := CostBreakdown{
		RawMaterial:   c.rates.RawMaterial.Mul(decimal.NewFromInt(int64(supply))),
		Manufacturing: c.rates.Manufacturing.Mul(decimal.NewFromInt(int64(production))),
		Distribution:  c.rates.Distribution.Mul(decimal.NewFromInt(int64(distribution))),
		Holding:       c.rates.Holding.Mul(decimal.NewFromInt(int64(state.TotalInventory()))),
		Backorder:     c.rates.Backorder.Mul(decimal.NewFromInt(int64(state.Backorders))),
	}
	total := b.Total()
	c.history = append(c.history, total)
	c.breakdowns = append(c.breakdowns, b)
	return total
}

// History returns a copy of the per-step totals in step order.
func (c *CostManager) History() []decimal.Decimal {
	return append([]decimal.Decimal(nil), c.history...)
}

// Breakdowns returns a copy of the per-step component costs in step order.
func (c *CostManager) Breakdowns() []CostBreakdown {
	return append([]CostBreakdown(nil), c.breakdowns...)
}
