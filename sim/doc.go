// Package sim provides the core step-based engine of the four-tier supply
// chain simulator: supplier, manufacturer, distributor and retailer.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - state.go: the eight-field State, its map form and validation
//   - allocation.go: the pure min-based allocation rules for each tier
//   - simulator.go: the step loop (forecast, stage selection, retail
//     fulfilment, metrics, daily reset)
//
// Supporting analytics live alongside the kernel:
//   - forecast.go: Holt double exponential smoothing over a bounded window
//   - cost.go: per-step cost accounting in decimal arithmetic
//   - metrics.go: fill rate, inventory turnover and cost totals
//   - inventory.go: safety stock, reorder point and EOQ recommendations
//
// # Architecture
//
// Sub-packages hold data types and exporters that depend on sim but not the
// other way around, with the exception of trace records:
//   - sim/trace/: per-step decision records and their summary
//   - sim/export/: Prometheus textfile export of run KPIs
//
// # Key Interfaces
//
//   - Decider: picks the single stage to run each step from a state snapshot.
//     A nil Decider runs every stage (pipeline mode).
//   - Reporter: observes each stage as it completes (text, log or no-op).
package sim
