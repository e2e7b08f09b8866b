package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateConfigCmd checks a configuration file (and optional scenario) without running
var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate a configuration file and scenario preset",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "configuration valid: %d steps, lead time %g, seed %d\n",
			cfg.Simulation.Int("num_steps"), cfg.Simulation.Float("lead_time"), cfg.Simulation.Int("random_seed"))
		return nil
	},
}

func init() {
	validateConfigCmd.Flags().StringVar(&configPath, "config", "", "YAML file of section: {option: value} overrides")
	validateConfigCmd.Flags().StringVar(&scenarioPath, "scenario-file", "scenarios.yaml", "YAML file of named scenario presets")
	validateConfigCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario preset to validate on top of the config file")
	validateConfigCmd.Flags().IntVar(&numSteps, "steps", 5, "Number of simulation steps (overrides simulation.num_steps)")
}
