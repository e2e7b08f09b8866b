package cmd

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/supplychain-sim/sim"
)

// ScenarioFile is the structure of scenarios.yaml: named presets, each a set
// of configuration section overrides.
type ScenarioFile struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is one preset. Section fields mirror sim.Config so unknown
// section names are rejected by strict parsing.
type Scenario struct {
	Description string      `yaml:"description"`
	Simulation  sim.Section `yaml:"simulation"`
	Inventory   sim.Section `yaml:"inventory"`
	Demand      sim.Section `yaml:"demand"`
	Costs       sim.Section `yaml:"costs"`
	Resupply    sim.Section `yaml:"resupply"`
}

// Overrides returns the non-empty sections keyed by section name.
func (s Scenario) Overrides() map[string]sim.Section {
	all := map[string]sim.Section{
		sim.SectionSimulation: s.Simulation,
		sim.SectionInventory:  s.Inventory,
		sim.SectionDemand:     s.Demand,
		sim.SectionCosts:      s.Costs,
		sim.SectionResupply:   s.Resupply,
	}
	overrides := make(map[string]sim.Section)
	for name, section := range all {
		if len(section) > 0 {
			overrides[name] = section
		}
	}
	return overrides
}

func loadScenarioFile(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	var f ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}
	return &f, nil
}

// GetScenarioOverrides returns the configuration overrides of a named preset.
func GetScenarioOverrides(path, name string) (map[string]sim.Section, error) {
	f, err := loadScenarioFile(path)
	if err != nil {
		return nil, err
	}
	scenario, ok := f.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q in %s (available: %v)", name, path, slices.Sorted(maps.Keys(f.Scenarios)))
	}
	logrus.Infof("Using scenario preset %v", name)
	return scenario.Overrides(), nil
}
