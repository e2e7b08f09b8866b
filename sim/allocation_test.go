package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupply(t *testing.T) {
	tests := []struct {
		name              string
		demand, inventory int
		want              int
	}{
		{"normal supply", 30, 100, 30},
		{"limited inventory", 100, 50, 50},
		{"zero inventory", 30, 0, 0},
		{"zero demand", 0, 80, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supply(tt.demand, tt.inventory))
		})
	}
}

func TestSupply_NeverExceedsEitherInput(t *testing.T) {
	for demand := 0; demand <= 60; demand += 7 {
		for inventory := 0; inventory <= 60; inventory += 5 {
			got := Supply(demand, inventory)
			assert.Equal(t, min(demand, inventory), got)
			assert.LessOrEqual(t, got, demand)
			assert.LessOrEqual(t, got, inventory)
		}
	}
}

func TestManufacture(t *testing.T) {
	tests := []struct {
		name                          string
		rawMaterial, capacity, demand int
		want                          int
	}{
		{"demand bound", 50, 40, 30, 30},
		{"capacity bound", 100, 30, 50, 30},
		{"material bound", 20, 50, 30, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Manufacture(tt.rawMaterial, tt.capacity, tt.demand))
		})
	}
}

func TestManufacture_SymmetricInConstraints(t *testing.T) {
	assert.Equal(t, Manufacture(3, 9, 5), Manufacture(9, 5, 3))
	assert.Equal(t, Manufacture(3, 9, 5), Manufacture(5, 3, 9))
}

func TestDistribute(t *testing.T) {
	assert.Equal(t, 50, Distribute(100, 50))
	assert.Equal(t, 30, Distribute(30, 50))
	assert.Equal(t, 0, Distribute(0, 50))
}

func TestRetailFulfill(t *testing.T) {
	assert.Equal(t, 30, RetailFulfill(30, 50))
	assert.Equal(t, 30, RetailFulfill(50, 30))
	assert.Equal(t, 0, RetailFulfill(30, 0))
}

func TestAllocation_NegativeInput_PropagatesMinimum(t *testing.T) {
	// Negative inputs are not rejected; the minimum flows through unchanged.
	assert.Equal(t, -5, Supply(-5, 10))
	assert.Equal(t, -1, Manufacture(10, -1, 4))
	assert.Equal(t, -3, Distribute(-3, 0))
	assert.Equal(t, -2, RetailFulfill(4, -2))
}
