package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/inference-sim/supplychain-sim/sim"
	"github.com/inference-sim/supplychain-sim/sim/trace"
)

func TestRunSimulation_MetricsPrintedToStdout(t *testing.T) {
	// GIVEN default configuration in pipeline mode
	var stdout bytes.Buffer
	opts := runOptions{Config: sim.DefaultConfig(), Seed: 42}

	// WHEN the simulation runs
	err := runSimulation(context.Background(), opts, &stdout)

	// THEN the metrics block MUST appear on stdout
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "=== Simulation Metrics ===", "metrics header must be on stdout")
	assert.Contains(t, stdout.String(), "Fill Rate")
}

func TestRunSimulation_WritesResultsAndTextfile(t *testing.T) {
	// GIVEN output paths and a traced cyclic run
	dir := t.TempDir()
	results := filepath.Join(dir, "results.json")
	textfile := filepath.Join(dir, "kpi.prom")
	opts := runOptions{
		Config:          sim.DefaultConfig(),
		Seed:            7,
		Decider:         "cyclic",
		ResultsPath:     results,
		MetricsTextfile: textfile,
		TraceLevel:      trace.TraceLevelSteps,
	}

	// WHEN the simulation runs
	require.NoError(t, runSimulation(context.Background(), opts, &bytes.Buffer{}))

	// THEN the JSON results carry a run id, the mode and the trace summary
	data, err := os.ReadFile(results)
	require.NoError(t, err)
	var out sim.MetricsOutput
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, int64(7), out.Seed)
	assert.Equal(t, sim.ModeDecision, out.Mode)
	assert.Equal(t, 5, out.Steps)
	require.NotNil(t, out.Trace)
	assert.Equal(t, 5, out.Trace.TotalSteps)

	// AND the textfile is labelled with the same run id
	prom, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `run_id="`+out.RunID+`"`)
}

func TestRunSimulation_TextReport(t *testing.T) {
	var stdout bytes.Buffer
	opts := runOptions{Config: sim.DefaultConfig(), Seed: 42, Report: "text"}

	require.NoError(t, runSimulation(context.Background(), opts, &stdout))

	assert.Contains(t, stdout.String(), "--- Step 1: Supply ---")
	assert.Contains(t, stdout.String(), "--- Step 5: Retail ---")
}

func TestRunSimulation_CancelledContext_StillPrintsSummary(t *testing.T) {
	var stdout bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := runOptions{Config: sim.DefaultConfig(), Seed: 42, Decider: "cyclic"}

	err := runSimulation(ctx, opts, &stdout)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Contains(t, stdout.String(), "=== Simulation Metrics ===")
}

func TestRunSimulation_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts runOptions
	}{
		{"unknown decider", runOptions{Config: sim.DefaultConfig(), Decider: "oracle"}},
		{"unknown report", runOptions{Config: sim.DefaultConfig(), Report: "html"}},
		{"invalid config", runOptions{Config: &sim.Config{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, runSimulation(context.Background(), tt.opts, &bytes.Buffer{}))
		})
	}
}

func TestNewDecider(t *testing.T) {
	cfg := sim.DefaultConfig()

	d, err := newDecider("none", nil, cfg)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = newDecider("cyclic", []string{"distribute"}, cfg)
	require.NoError(t, err)
	label, err := d.Decide(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "distribute", label)

	d, err = newDecider("reorder-point", nil, cfg)
	require.NoError(t, err)
	assert.IsType(t, &sim.ReorderPointDecider{}, d)
}

// newFlagCommand returns a throwaway command carrying the config-related flags,
// so tests can mark flags as changed without touching the shared commands.
func newFlagCommand(t *testing.T) *cobra.Command {
	t.Helper()
	oldConfig, oldScenarioPath, oldScenario, oldSteps := configPath, scenarioPath, scenarioName, numSteps
	t.Cleanup(func() {
		configPath, scenarioPath, scenarioName, numSteps = oldConfig, oldScenarioPath, oldScenario, oldSteps
	})
	c := &cobra.Command{Use: "test"}
	c.Flags().StringVar(&configPath, "config", "", "")
	c.Flags().StringVar(&scenarioPath, "scenario-file", "../scenarios.yaml", "")
	c.Flags().StringVar(&scenarioName, "scenario", "", "")
	c.Flags().IntVar(&numSteps, "steps", 5, "")
	return c
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(newFlagCommand(t))

	require.NoError(t, err)
	assert.Equal(t, sim.DefaultConfig(), cfg)
}

func TestResolveConfig_FileThenChangedFlag(t *testing.T) {
	// GIVEN a config file setting 20 steps and holding cost 1
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  num_steps: 20\ncosts:\n  holding: 1\n"), 0644))
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("config", path))

	// WHEN resolved without touching --steps
	cfg, err := resolveConfig(c)
	require.NoError(t, err)

	// THEN the file value wins over the flag default
	assert.Equal(t, 20, cfg.Simulation.Int("num_steps"))
	assert.Equal(t, 1.0, cfg.Costs.Float("holding"))

	// AND an explicitly set flag wins over the file
	require.NoError(t, c.Flags().Set("steps", "8"))
	cfg, err = resolveConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Simulation.Int("num_steps"))
}

func TestResolveConfig_Scenario(t *testing.T) {
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("scenario", "tight-capacity"))

	cfg, err := resolveConfig(c)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Inventory.Int("manufacturer_capacity"))
	assert.Equal(t, 25, cfg.Inventory.Int("distributor_capacity"))
	assert.Equal(t, 100, cfg.Inventory.Int("initial_supplier"))
}

func TestResolveConfig_InvalidFlagValue(t *testing.T) {
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("steps", "0"))

	_, err := resolveConfig(c)

	var ce *sim.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "num_steps", ce.Option)
}

func TestResolveConfig_MissingFile(t *testing.T) {
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("config", filepath.Join(t.TempDir(), "missing.yaml")))

	_, err := resolveConfig(c)

	assert.Error(t, err)
}
