package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/supplychain-sim/sim"
	"github.com/inference-sim/supplychain-sim/sim/export"
	"github.com/inference-sim/supplychain-sim/sim/trace"
)

var (
	// CLI flags for the run
	seed            int64    // Seed for demand and resupply draws
	numSteps        int      // Number of simulation steps
	logLevel        string   // Log verbosity level
	configPath      string   // YAML configuration overrides
	scenarioPath    string   // YAML file of named scenario presets
	scenarioName    string   // Preset to apply from scenarioPath
	deciderName     string   // none, cyclic or reorder-point
	cyclicLabels    []string // Labels cycled by the cyclic decider
	reportFormat    string   // none, text or log
	resultsPath     string   // JSON results output path
	metricsTextfile string   // Prometheus textfile output path
	traceLevel      string   // Step trace verbosity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "supplychain-sim",
	Short: "Discrete-step simulator for a four-tier supply chain",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the supply chain simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("Configuration error: %v", err)
		}

		runSeed := int64(cfg.Simulation.Int("random_seed"))
		if cmd.Flags().Changed("seed") {
			runSeed = seed
		}

		opts := runOptions{
			Config:          cfg,
			Seed:            runSeed,
			Decider:         deciderName,
			CyclicLabels:    cyclicLabels,
			Report:          reportFormat,
			ResultsPath:     resultsPath,
			MetricsTextfile: metricsTextfile,
			TraceLevel:      trace.TraceLevel(traceLevel),
		}
		if err := runSimulation(cmd.Context(), opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		logrus.Info("Simulation complete.")
	},
}

// runOptions carries the resolved run settings into runSimulation.
type runOptions struct {
	Config          *sim.Config
	Seed            int64
	Decider         string
	CyclicLabels    []string
	Report          string
	ResultsPath     string
	MetricsTextfile string
	TraceLevel      trace.TraceLevel
}

// runSimulation builds and runs a simulator, prints the summary to stdout
// and writes the optional results and metrics files.
func runSimulation(ctx context.Context, opts runOptions, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	decider, err := newDecider(opts.Decider, opts.CyclicLabels, opts.Config)
	if err != nil {
		return err
	}
	reporter, err := newReporter(opts.Report, stdout)
	if err != nil {
		return err
	}

	s, err := sim.NewSimulator(sim.SimConfig{
		Config:   opts.Config,
		Seed:     opts.Seed,
		Decider:  decider,
		Reporter: reporter,
		Trace:    trace.TraceConfig{Level: opts.TraceLevel},
	})
	if err != nil {
		return err
	}

	summary, runErr := s.Run(ctx)
	summary.Print(stdout)
	if runErr != nil {
		return runErr
	}

	out := s.Output(uuid.NewString())
	if opts.ResultsPath != "" {
		if err := sim.SaveResults(out, opts.ResultsPath); err != nil {
			return err
		}
		logrus.Infof("Results written to %s (run %s)", opts.ResultsPath, out.RunID)
	}
	if opts.MetricsTextfile != "" {
		if err := export.WriteRunMetrics(out, opts.MetricsTextfile); err != nil {
			return err
		}
	}
	return nil
}

// newDecider maps the --decider flag to a Decider; "none" runs the full pipeline.
func newDecider(name string, labels []string, cfg *sim.Config) (sim.Decider, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "cyclic":
		return sim.NewCyclicDecider(labels...), nil
	case "reorder-point":
		return sim.NewReorderPointDecider(cfg), nil
	}
	return nil, fmt.Errorf("unknown decider %q (want none, cyclic or reorder-point)", name)
}

func newReporter(format string, w io.Writer) (sim.Reporter, error) {
	switch format {
	case "", "none":
		return sim.NopReporter{}, nil
	case "text":
		return sim.TextReporter{W: w}, nil
	case "log":
		return sim.NewLogReporter(), nil
	}
	return nil, fmt.Errorf("unknown report format %q (want none, text or log)", format)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for demand and resupply draws (overrides simulation.random_seed)")
	runCmd.Flags().IntVar(&numSteps, "steps", 5, "Number of simulation steps (overrides simulation.num_steps)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML file of section: {option: value} overrides")
	runCmd.Flags().StringVar(&scenarioPath, "scenario-file", "scenarios.yaml", "YAML file of named scenario presets")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario preset to apply on top of the config file")

	// Decision making and reporting
	runCmd.Flags().StringVar(&deciderName, "decider", "none", "Step decider (none, cyclic, reorder-point)")
	runCmd.Flags().StringSliceVar(&cyclicLabels, "cyclic-labels", nil, "Labels cycled by the cyclic decider (default supply,manufacture,distribute)")
	runCmd.Flags().StringVar(&reportFormat, "report", "none", "Per-step report format (none, text, log)")

	// Outputs
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write JSON results to this file")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write final KPIs in Prometheus text format to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Step trace level (none, steps)")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(validateConfigCmd)
}
