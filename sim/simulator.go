// sim/simulator.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/supplychain-sim/sim/trace"
)

const (
	ModePipeline = "pipeline"
	ModeDecision = "decision"
)

// SimConfig bundles everything needed to construct a Simulator.
type SimConfig struct {
	Config   *Config
	Seed     int64
	Decider  Decider  // nil runs every stage each step
	Reporter Reporter // nil discards step reports
	Trace    trace.TraceConfig
}

// stepFlows holds the quantities moved during one step.
type stepFlows struct {
	supply       int
	production   int
	distribution int
	fulfilled    int
}

// Simulator owns the supply chain state and advances it one step at a time.
type Simulator struct {
	State     State
	StepCount int

	Metrics    *PerformanceMetrics
	Costs      *CostManager
	Forecaster *DemandForecast
	Optimizer  *InventoryOptimizer
	// Trace is nil unless step tracing is enabled
	Trace *trace.SimulationTrace

	cfg      *Config
	key      SimulationKey
	rng      *PartitionedRNG
	decider  Decider
	reporter Reporter

	numSteps            int
	distributorCapacity int
}

// NewSimulator validates a private copy of the configuration and builds the
// step-zero state from it.
func NewSimulator(sc SimConfig) (*Simulator, error) {
	if sc.Config == nil {
		return nil, errors.New("simulator requires a configuration")
	}
	cfg := sc.Config.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reporter := sc.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}

	key := NewSimulationKey(sc.Seed)
	sim := &Simulator{
		State:               NewInitialState(cfg),
		Metrics:             NewPerformanceMetrics(),
		Costs:               NewCostManager(CostRatesFromConfig(cfg)),
		Forecaster:          NewDemandForecastFromConfig(cfg),
		Optimizer:           NewInventoryOptimizer(cfg),
		cfg:                 cfg,
		key:                 key,
		rng:                 NewPartitionedRNG(key),
		decider:             sc.Decider,
		reporter:            reporter,
		numSteps:            cfg.Simulation.Int("num_steps"),
		distributorCapacity: cfg.Inventory.Int("distributor_capacity"),
	}
	if sc.Trace.Level == trace.TraceLevelSteps {
		sim.Trace = trace.NewSimulationTrace(sc.Trace)
	}
	if err := sim.State.Validate(); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	return sim, nil
}

// Mode reports whether steps are chosen by a Decider or run as the full pipeline.
func (sim *Simulator) Mode() string {
	if sim.decider == nil {
		return ModePipeline
	}
	return ModeDecision
}

// Config returns the validated configuration the simulator runs with.
func (sim *Simulator) Config() *Config {
	return sim.cfg
}

// Run executes simulation.num_steps steps, halting at the first failure.
func (sim *Simulator) Run(ctx context.Context) (MetricsSummary, error) {
	logrus.Infof("Starting %s simulation: %d steps, seed %d", sim.Mode(), sim.numSteps, sim.key)
	for i := 0; i < sim.numSteps; i++ {
		if err := sim.Step(ctx); err != nil {
			return sim.Metrics.CalculateMetrics(), err
		}
	}
	summary := sim.Metrics.CalculateMetrics()
	logrus.Infof("Simulation finished after %d steps: fill rate %.2f%%, total costs %s",
		sim.StepCount, summary.FillRate, summary.TotalCosts.StringFixed(2))
	return summary, nil
}

// Step advances the state by one step: forecast, the selected stage(s),
// retail fulfilment, metrics and the daily reset. The state is validated
// afterwards; a step that leaves a negative field fails.
func (sim *Simulator) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sim.StepCount++
	step := sim.StepCount

	sim.State.ForecastDemand = sim.Forecaster.Forecast(1)
	logrus.Debugf("step %d: forecast demand %d", step, sim.State.ForecastDemand)

	record := trace.StepRecord{Step: step, Forecast: sim.State.ForecastDemand}
	var flows stepFlows

	if sim.decider == nil {
		record.Action = ModePipeline
		sim.runPipeline(step, &flows)
	} else {
		label, err := sim.decider.Decide(ctx, sim.State.AsMap())
		if err != nil {
			return fmt.Errorf("step %d: decider: %w", step, err)
		}
		action, err := ParseAction(label)
		if err != nil {
			logrus.Warnf("step %d: %v", step, err)
			record.Fallback = true
		}
		record.Label = label
		record.Action = action.Effective().String()
		sim.runAction(step, action, &flows)
	}

	sim.fulfilRetail(step, &flows)

	sim.Metrics.UpdateFillRate(sim.State.RetailerCustomerDemand, flows.fulfilled)
	sim.Metrics.UpdateInventory(sim.State.InventoryLevels())
	cost := sim.Costs.CalculateCosts(sim.State, flows.supply, flows.production, flows.distribution)
	sim.Metrics.UpdateCosts(cost)

	sim.dailyReset()

	if err := sim.State.Validate(); err != nil {
		return fmt.Errorf("step %d: %w", step, err)
	}

	if sim.Trace.Enabled() {
		record.Supply = flows.supply
		record.Production = flows.production
		record.Distribution = flows.distribution
		record.Fulfilled = flows.fulfilled
		record.Backorders = sim.State.Backorders
		record.Cost = cost.InexactFloat64()
		record.TotalInventory = sim.State.TotalInventory()
		sim.Trace.RecordStep(record)
	}
	return nil
}

func (sim *Simulator) runPipeline(step int, flows *stepFlows) {
	demand := sim.manufacturerDemand()
	flows.supply = sim.supplyStage(demand)
	sim.reporter.Report(sim.State, step, "Supply", map[string]int{"raw_materials_supplied": flows.supply})

	flows.production = sim.manufactureStage(flows.supply, demand)
	sim.reporter.Report(sim.State, step, "Production", map[string]int{"goods_manufactured": flows.production})

	intake, retailSupply := sim.distributeStage()
	flows.distribution = retailSupply
	sim.reporter.Report(sim.State, step, "Distribution", map[string]int{"distributor_intake": intake, "retail_supply": retailSupply})
}

// runAction executes the single stage chosen by the decider. Raw material
// shipped by a supply-only step leaves the supplier without being credited
// downstream; manufacture draws on the manufacturer's own stock.
func (sim *Simulator) runAction(step int, action Action, flows *stepFlows) {
	switch action.Effective() {
	case ActionManufacture:
		owed := sim.State.RetailerCustomerDemand + sim.State.Backorders
		flows.production = sim.manufactureStage(sim.State.ManufacturerInventory, owed)
		sim.reporter.Report(sim.State, step, "Production", map[string]int{"goods_manufactured": flows.production})
	case ActionDistribute:
		intake, retailSupply := sim.distributeStage()
		flows.distribution = retailSupply
		sim.reporter.Report(sim.State, step, "Distribution", map[string]int{"distributor_intake": intake, "retail_supply": retailSupply})
	default:
		flows.supply = sim.supplyStage(sim.manufacturerDemand())
		name := "Supply"
		if action == ActionUnknown {
			name = "Supply (default)"
		}
		sim.reporter.Report(sim.State, step, name, map[string]int{"raw_materials_supplied": flows.supply})
	}
}

// manufacturerDemand is the forecast not already covered by manufacturer stock.
func (sim *Simulator) manufacturerDemand() int {
	return max(sim.State.ForecastDemand-sim.State.ManufacturerInventory, 0)
}

func (sim *Simulator) supplyStage(demand int) int {
	supply := Supply(demand, sim.State.SupplierInventory)
	sim.State.SupplierInventory -= supply
	return supply
}

func (sim *Simulator) manufactureStage(rawMaterial, demand int) int {
	production := Manufacture(rawMaterial, sim.State.ManufacturerCapacity, demand)
	sim.State.ManufacturerCapacity -= production
	sim.State.ManufacturerInventory += production
	return production
}

// distributeStage moves manufacturer stock into free distributor capacity,
// then ships to retail against demand plus backorders.
func (sim *Simulator) distributeStage() (intake, retailSupply int) {
	intake = min(sim.State.ManufacturerInventory, max(sim.distributorCapacity-sim.State.DistributorInventory, 0))
	sim.State.ManufacturerInventory -= intake
	sim.State.DistributorInventory += intake

	retailSupply = Distribute(sim.State.DistributorInventory, sim.State.RetailerCustomerDemand+sim.State.Backorders)
	sim.State.DistributorInventory -= retailSupply
	sim.State.RetailInventory += retailSupply
	return intake, retailSupply
}

func (sim *Simulator) fulfilRetail(step int, flows *stepFlows) {
	total := sim.State.RetailerCustomerDemand + sim.State.Backorders
	flows.fulfilled = RetailFulfill(total, sim.State.RetailInventory)
	sim.State.RetailInventory -= flows.fulfilled
	sim.State.Backorders = total - flows.fulfilled
	sim.reporter.Report(sim.State, step, "Retail", map[string]int{"fulfilled": flows.fulfilled, "backorders": sim.State.Backorders})
}

// dailyReset restores capacity, replenishes the supplier and draws the next
// day's customer demand, which is fed to the forecaster.
func (sim *Simulator) dailyReset() {
	sim.State.ManufacturerCapacity = sim.cfg.Inventory.Int("manufacturer_capacity")

	resupply := sim.rng.UniformInt(SubsystemResupply, sim.cfg.Resupply.Int("min_amount"), sim.cfg.Resupply.Int("max_amount"))
	sim.State.SupplierInventory += resupply

	variation := sim.rng.UniformInt(SubsystemDemand, sim.cfg.Demand.Int("min_variation"), sim.cfg.Demand.Int("max_variation"))
	sim.State.RetailerCustomerDemand = max(sim.cfg.Demand.Int("initial")+variation, 0)
	sim.Forecaster.Update(sim.State.RetailerCustomerDemand)
}

// Recommend runs the inventory optimizer over the observed demand history.
func (sim *Simulator) Recommend() Recommendation {
	return sim.Optimizer.Optimize(sim.Forecaster.History(), sim.cfg.Simulation.Float("lead_time"))
}

// Output assembles the results document for SaveResults.
func (sim *Simulator) Output(runID string) MetricsOutput {
	rec := sim.Recommend()
	out := MetricsOutput{
		RunID:            runID,
		Seed:             int64(sim.key),
		Steps:            sim.StepCount,
		Mode:             sim.Mode(),
		SimulationEnded:  time.Now().UTC(),
		Summary:          sim.Metrics.CalculateMetrics(),
		CostHistory:      sim.Costs.History(),
		CostBreakdown:    sim.Costs.Breakdowns(),
		InventoryHistory: append([]int(nil), sim.Metrics.InventoryHistory...),
		FinalState:       sim.State,
		Recommendation:   &rec,
	}
	if sim.Trace.Enabled() {
		out.Trace = trace.Summarize(sim.Trace)
	}
	return out
}
