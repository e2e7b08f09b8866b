package sim

import (
	"context"
)

// Decider chooses the pipeline stage to run for one step from a snapshot of
// the state mapping. Labels outside ValidActionLabels are tolerated by the
// Simulator and executed as supply; a returned error halts the run.
type Decider interface {
	Decide(ctx context.Context, state map[string]int) (string, error)
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, state map[string]int) (string, error)

func (f DeciderFunc) Decide(ctx context.Context, state map[string]int) (string, error) {
	return f(ctx, state)
}

// CyclicDecider returns its labels round-robin, one per call.
type CyclicDecider struct {
	labels []string
	next   int
}

// NewCyclicDecider cycles through labels, or supply → manufacture → distribute
// when none are given.
func NewCyclicDecider(labels ...string) *CyclicDecider {
	if len(labels) == 0 {
		labels = ValidActionLabels()
	}
	return &CyclicDecider{labels: labels}
}

func (d *CyclicDecider) Decide(ctx context.Context, _ map[string]int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	label := d.labels[d.next]
	d.next = (d.next + 1) % len(d.labels)
	return label, nil
}

// ReorderPointDecider is a rule-based stand-in for a trained action
// classifier. It tracks observed customer demand and picks:
//   - distribute when retail stock cannot cover demand plus backorders and
//     stock is available upstream,
//   - manufacture when manufacturer stock has fallen below the buffered
//     reorder point and there is material and capacity to work with,
//   - supply otherwise.
type ReorderPointDecider struct {
	optimizer    *InventoryOptimizer
	history      *DemandWindow
	leadTime     float64
	bufferFactor float64
}

func NewReorderPointDecider(cfg *Config) *ReorderPointDecider {
	return &ReorderPointDecider{
		optimizer:    NewInventoryOptimizer(cfg),
		history:      NewDemandWindow(max(cfg.Demand.Int("forecast_window"), 1)),
		leadTime:     cfg.Simulation.Float("lead_time"),
		bufferFactor: cfg.Inventory.Float("safety_stock_factor"),
	}
}

func (d *ReorderPointDecider) Decide(ctx context.Context, state map[string]int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateState(state); err != nil {
		return "", err
	}

	demand := state[FieldRetailerCustomerDemand]
	d.history.Push(demand)

	owed := demand + state[FieldBackorders]
	upstream := state[FieldDistributorInventory] + state[FieldManufacturerInventory]
	if state[FieldRetailInventory] < owed && upstream > 0 {
		return ActionDistribute.String(), nil
	}

	threshold := float64(d.ReorderPoint()) * (1 + d.bufferFactor)
	stock := state[FieldManufacturerInventory]
	if float64(stock) < threshold && stock > 0 && state[FieldManufacturerCapacity] > 0 {
		return ActionManufacture.String(), nil
	}
	return ActionSupply.String(), nil
}

// ReorderPoint is the current reorder point over the observed demand history.
func (d *ReorderPointDecider) ReorderPoint() int {
	return d.optimizer.Optimize(d.history.Values(), d.leadTime).ReorderPoint
}
