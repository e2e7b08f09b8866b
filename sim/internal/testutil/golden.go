// Package testutil provides shared test infrastructure for the supply chain
// simulator: the golden dataset of reference forecasts and inventory
// recommendations, and float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Forecasts     []GoldenForecastCase `json:"forecasts"`
	Optimizations []GoldenOptimizeCase `json:"optimizations"`
}

// GoldenForecastCase is a demand series fed to a fresh forecaster and the
// expected smoothed state afterwards.
type GoldenForecastCase struct {
	Name   string  `json:"name"`
	Series []int   `json:"series"`
	Alpha  float64 `json:"alpha"`
	Beta   float64 `json:"beta"`
	Window int     `json:"window"`

	Level     float64        `json:"level"`
	Trend     float64        `json:"trend"`
	Forecasts map[string]int `json:"forecasts"` // steps ahead (as string) → expected forecast
}

// GoldenOptimizeCase is a demand history with cost and service parameters and
// the expected inventory recommendation.
type GoldenOptimizeCase struct {
	Name            string  `json:"name"`
	History         []int   `json:"history"`
	LeadTime        float64 `json:"lead_time"`
	ServiceLevel    float64 `json:"service_level"`
	RawMaterialCost float64 `json:"raw_material_cost"`
	HoldingCost     float64 `json:"holding_cost"`

	SafetyStock   int `json:"safety_stock"`
	ReorderPoint  int `json:"reorder_point"`
	OrderQuantity int `json:"order_quantity"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
