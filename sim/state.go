package sim

import (
	"maps"
	"slices"
)

// State field names, as exposed to decision and reporting collaborators.
const (
	FieldSupplierInventory      = "supplier_inventory"
	FieldManufacturerCapacity   = "manufacturer_capacity"
	FieldManufacturerInventory  = "manufacturer_inventory"
	FieldDistributorInventory   = "distributor_inventory"
	FieldRetailInventory        = "retail_inventory"
	FieldRetailerCustomerDemand = "retailer_customer_demand"
	FieldBackorders             = "backorders"
	FieldForecastDemand         = "forecast_demand"
)

// requiredStateKeys must be present in any state mapping accepted by ValidateState.
var requiredStateKeys = []string{
	FieldDistributorInventory,
	FieldManufacturerCapacity,
	FieldRetailInventory,
	FieldSupplierInventory,
}

// State is the shared supply chain state advanced once per step.
// Every field is non-negative between steps.
type State struct {
	SupplierInventory      int `json:"supplier_inventory"`
	ManufacturerCapacity   int `json:"manufacturer_capacity"`
	ManufacturerInventory  int `json:"manufacturer_inventory"`
	DistributorInventory   int `json:"distributor_inventory"`
	RetailInventory        int `json:"retail_inventory"`
	RetailerCustomerDemand int `json:"retailer_customer_demand"`
	Backorders             int `json:"backorders"`
	ForecastDemand         int `json:"forecast_demand"`
}

// NewInitialState builds the step-zero state from the inventory and demand sections.
func NewInitialState(cfg *Config) State {
	demand := cfg.Demand.Int("initial")
	return State{
		SupplierInventory:      cfg.Inventory.Int("initial_supplier"),
		ManufacturerCapacity:   cfg.Inventory.Int("manufacturer_capacity"),
		ManufacturerInventory:  cfg.Inventory.Int("initial_manufacturer"),
		DistributorInventory:   cfg.Inventory.Int("initial_distributor"),
		RetailInventory:        cfg.Inventory.Int("initial_retail"),
		RetailerCustomerDemand: demand,
		Backorders:             0,
		ForecastDemand:         demand,
	}
}

// AsMap returns the state as a field-name keyed mapping.
func (s State) AsMap() map[string]int {
	return map[string]int{
		FieldSupplierInventory:      s.SupplierInventory,
		FieldManufacturerCapacity:   s.ManufacturerCapacity,
		FieldManufacturerInventory:  s.ManufacturerInventory,
		FieldDistributorInventory:   s.DistributorInventory,
		FieldRetailInventory:        s.RetailInventory,
		FieldRetailerCustomerDemand: s.RetailerCustomerDemand,
		FieldBackorders:             s.Backorders,
		FieldForecastDemand:         s.ForecastDemand,
	}
}

// InventoryLevels returns the on-hand inventory of each tier.
func (s State) InventoryLevels() map[string]int {
	return map[string]int{
		"supplier":     s.SupplierInventory,
		"manufacturer": s.ManufacturerInventory,
		"distributor":  s.DistributorInventory,
		"retail":       s.RetailInventory,
	}
}

// TotalInventory sums on-hand inventory across the four tiers.
func (s State) TotalInventory() int {
	return s.SupplierInventory + s.ManufacturerInventory + s.DistributorInventory + s.RetailInventory
}

// Validate rejects negative fields.
func (s State) Validate() error {
	return ValidateState(s.AsMap())
}

// ValidateState checks that the required keys are present and that no value is negative.
func ValidateState(state map[string]int) error {
	var missing []string
	for _, key := range requiredStateKeys {
		if _, ok := state[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &StateValidationError{Missing: missing}
	}
	for _, key := range slices.Sorted(maps.Keys(state)) {
		if v := state[key]; v < 0 {
			return &StateValidationError{Field: key, Value: v}
		}
	}
	return nil
}

// StateFromMap builds a State from a field-name keyed mapping after validating it.
// Optional fields absent from the mapping are zero.
func StateFromMap(m map[string]int) (State, error) {
	if err := ValidateState(m); err != nil {
		return State{}, err
	}
	return State{
		SupplierInventory:      m[FieldSupplierInventory],
		ManufacturerCapacity:   m[FieldManufacturerCapacity],
		ManufacturerInventory:  m[FieldManufacturerInventory],
		DistributorInventory:   m[FieldDistributorInventory],
		RetailInventory:        m[FieldRetailInventory],
		RetailerCustomerDemand: m[FieldRetailerCustomerDemand],
		Backorders:             m[FieldBackorders],
		ForecastDemand:         m[FieldForecastDemand],
	}, nil
}
