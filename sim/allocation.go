package sim

// The four tier allocation rules. Each moves the largest quantity allowed by
// its constraints. Inputs are expected non-negative but are not validated:
// a negative input propagates through the minimum.

// Supply returns the raw material a supplier ships against manufacturer demand.
func Supply(demand, inventory int) int {
	return min(inventory, demand)
}

// Manufacture returns the goods produced, bounded by capacity, raw material and demand.
func Manufacture(rawMaterial, capacity, demand int) int {
	return min(capacity, rawMaterial, demand)
}

// Distribute returns the goods a distributor ships to retail.
func Distribute(inventory, demand int) int {
	return min(inventory, demand)
}

// RetailFulfill returns the customer demand served from retail stock.
func RetailFulfill(customerDemand, availableStock int) int {
	return min(customerDemand, availableStock)
}
