package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/supplychain-sim/sim"
)

// resolveConfig layers the configuration: defaults, then the --config file,
// then the --scenario preset, then explicitly set CLI flags. Flags left at
// their defaults never overwrite file values (checked via Flags().Changed).
// The result is validated.
func resolveConfig(cmd *cobra.Command) (*sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logrus.Infof("Loaded configuration from %s", configPath)
	}

	if scenarioName != "" {
		overrides, err := GetScenarioOverrides(scenarioPath, scenarioName)
		if err != nil {
			return nil, err
		}
		cfg.Update(overrides)
	}

	cfg.Update(flagOverrides(cmd))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagOverrides collects the CLI flags that map onto configuration options.
func flagOverrides(cmd *cobra.Command) map[string]sim.Section {
	overrides := make(map[string]sim.Section)
	if cmd.Flags().Changed("steps") {
		overrides[sim.SectionSimulation] = sim.Section{"num_steps": float64(numSteps)}
	}
	return overrides
}
