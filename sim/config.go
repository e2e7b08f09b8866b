package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Section is one named block of numeric configuration options.
type Section map[string]float64

// Float returns the option value, or 0 when the option is absent.
func (s Section) Float(option string) float64 {
	return s[option]
}

// Int returns the option value truncated toward zero.
func (s Section) Int(option string) int {
	return int(s[option])
}

// Config groups the simulator's configuration sections.
// All sections must be listed here so strict YAML parsing rejects typos in section names.
type Config struct {
	Simulation Section `yaml:"simulation"`
	Inventory  Section `yaml:"inventory"`
	Demand     Section `yaml:"demand"`
	Costs      Section `yaml:"costs"`
	Resupply   Section `yaml:"resupply"`
}

// Section names accepted by Config.Update and config files.
const (
	SectionSimulation = "simulation"
	SectionInventory  = "inventory"
	SectionDemand     = "demand"
	SectionCosts      = "costs"
	SectionResupply   = "resupply"
)

// DefaultConfig returns the baseline configuration of a five-step run.
func DefaultConfig() *Config {
	return &Config{
		Simulation: Section{
			"num_steps":   5,
			"random_seed": 42,
			"lead_time":   0.5,
		},
		Inventory: Section{
			"initial_supplier":      100,
			"initial_manufacturer":  0,
			"initial_distributor":   50,
			"initial_retail":        0,
			"manufacturer_capacity": 50,
			"distributor_capacity":  50,
			"safety_stock_factor":   0.2,
			"service_level":         0.95,
		},
		Demand: Section{
			"initial":         30,
			"min_variation":   -5,
			"max_variation":   5,
			"forecast_window": 10,
			"smoothing_alpha": 0.3,
			"smoothing_beta":  0.1,
		},
		Costs: Section{
			"raw_material":  10,
			"manufacturing": 15,
			"distribution":  5,
			"holding":       2,
			"backorder":     20,
		},
		Resupply: Section{
			"min_amount": 10,
			"max_amount": 20,
		},
	}
}

// section returns the named section, or nil for unknown names.
func (c *Config) section(name string) Section {
	switch name {
	case SectionSimulation:
		return c.Simulation
	case SectionInventory:
		return c.Inventory
	case SectionDemand:
		return c.Demand
	case SectionCosts:
		return c.Costs
	case SectionResupply:
		return c.Resupply
	}
	return nil
}

// Sections returns the configuration as a section-name keyed mapping.
func (c *Config) Sections() map[string]Section {
	return map[string]Section{
		SectionSimulation: c.Simulation,
		SectionInventory:  c.Inventory,
		SectionDemand:     c.Demand,
		SectionCosts:      c.Costs,
		SectionResupply:   c.Resupply,
	}
}

// Update merges overrides into the configuration section by section.
// Existing options are overwritten and new options within a known section are added.
// Unknown sections are ignored with a warning.
func (c *Config) Update(overrides map[string]Section) {
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if c.section(name) == nil {
			if !slices.Contains(sectionNames, name) {
				logrus.Warnf("ignoring unknown configuration section %q", name)
				continue
			}
			c.setSection(name, Section{})
		}
		maps.Copy(c.section(name), overrides[name])
	}
}

func (c *Config) setSection(name string, s Section) {
	switch name {
	case SectionSimulation:
		c.Simulation = s
	case SectionInventory:
		c.Inventory = s
	case SectionDemand:
		c.Demand = s
	case SectionCosts:
		c.Costs = s
	case SectionResupply:
		c.Resupply = s
	}
}

var sectionNames = []string{SectionSimulation, SectionInventory, SectionDemand, SectionCosts, SectionResupply}

// Clone returns a deep copy, so a running simulator is unaffected by later edits.
func (c *Config) Clone() *Config {
	return &Config{
		Simulation: maps.Clone(c.Simulation),
		Inventory:  maps.Clone(c.Inventory),
		Demand:     maps.Clone(c.Demand),
		Costs:      maps.Clone(c.Costs),
		Resupply:   maps.Clone(c.Resupply),
	}
}

// Validate checks counts, probabilities and costs. The first violation is
// returned as a *ConfigurationError.
func (c *Config) Validate() error {
	if c.Simulation.Float("num_steps") <= 0 {
		return &ConfigurationError{SectionSimulation, "num_steps", "number of steps must be positive"}
	}
	if c.Simulation.Float("lead_time") < 0 {
		return &ConfigurationError{SectionSimulation, "lead_time", "lead time cannot be negative"}
	}
	for _, key := range slices.Sorted(maps.Keys(c.Inventory)) {
		if (strings.Contains(key, "initial") || strings.Contains(key, "capacity")) && c.Inventory[key] < 0 {
			return &ConfigurationError{SectionInventory, key, fmt.Sprintf("cannot be negative, got %v", c.Inventory[key])}
		}
	}
	if c.Inventory.Float("safety_stock_factor") < 0 {
		return &ConfigurationError{SectionInventory, "safety_stock_factor", "cannot be negative"}
	}
	if sl, ok := c.Inventory["service_level"]; ok && (sl <= 0 || sl >= 1) {
		return &ConfigurationError{SectionInventory, "service_level", fmt.Sprintf("must be in (0, 1), got %v", sl)}
	}
	for _, key := range []string{"smoothing_alpha", "smoothing_beta"} {
		if v := c.Demand.Float(key); v < 0 || v > 1 {
			return &ConfigurationError{SectionDemand, key, fmt.Sprintf("must be between 0 and 1, got %v", v)}
		}
	}
	if c.Demand.Float("forecast_window") < 1 {
		return &ConfigurationError{SectionDemand, "forecast_window", "must be at least 1"}
	}
	if c.Demand.Float("min_variation") > c.Demand.Float("max_variation") {
		return &ConfigurationError{SectionDemand, "min_variation", "must not exceed max_variation"}
	}
	for _, key := range slices.Sorted(maps.Keys(c.Costs)) {
		if c.Costs[key] < 0 {
			return &ConfigurationError{SectionCosts, key, fmt.Sprintf("%s cost cannot be negative", key)}
		}
	}
	if c.Resupply.Float("min_amount") < 0 {
		return &ConfigurationError{SectionResupply, "min_amount", "cannot be negative"}
	}
	if c.Resupply.Float("min_amount") > c.Resupply.Float("max_amount") {
		return &ConfigurationError{SectionResupply, "min_amount", "must not exceed max_amount"}
	}
	return nil
}

// LoadConfigFile reads a YAML file of `section: {option: value}` overrides and
// merges it over DefaultConfig. Unknown sections are rejected.
// The result is not validated; callers run Validate after applying any flag overrides.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var file Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	overrides := make(map[string]Section)
	for name, s := range file.Sections() {
		if s != nil {
			overrides[name] = s
		}
	}
	cfg := DefaultConfig()
	cfg.Update(overrides)
	return cfg, nil
}
