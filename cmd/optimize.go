package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/supplychain-sim/sim"
)

var (
	demandHistory []int   // Observed demand, oldest first
	leadTime      float64 // Replenishment lead time in steps
)

// optimizeCmd prints inventory policy parameters for a demand history
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compute safety stock, reorder point and order quantity for a demand history",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}
		lt := cfg.Simulation.Float("lead_time")
		if cmd.Flags().Changed("lead-time") {
			lt = leadTime
		}
		if lt < 0 {
			logrus.Fatalf("Lead time cannot be negative: %v", lt)
		}
		printRecommendation(cmd.OutOrStdout(), sim.NewInventoryOptimizer(cfg), demandHistory, lt)
	},
}

func printRecommendation(w io.Writer, o *sim.InventoryOptimizer, history []int, lt float64) {
	rec := o.Optimize(history, lt)
	fmt.Fprintln(w, "=== Inventory Recommendation ===")
	fmt.Fprintf(w, "Demand History       : %v\n", history)
	fmt.Fprintf(w, "Lead Time            : %g\n", lt)
	fmt.Fprintf(w, "Safety Stock         : %d\n", rec.SafetyStock)
	fmt.Fprintf(w, "Reorder Point        : %d\n", rec.ReorderPoint)
	fmt.Fprintf(w, "Order Quantity (EOQ) : %d\n", rec.OrderQuantity)
}

func init() {
	optimizeCmd.Flags().IntSliceVar(&demandHistory, "demand", nil, "Comma-separated demand history, oldest first")
	optimizeCmd.Flags().Float64Var(&leadTime, "lead-time", 0.5, "Lead time in steps (overrides simulation.lead_time)")
	optimizeCmd.Flags().StringVar(&configPath, "config", "", "YAML file of section: {option: value} overrides")
	optimizeCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
