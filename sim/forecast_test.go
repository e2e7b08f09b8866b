package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inference-sim/supplychain-sim/sim/internal/testutil"
)

func TestDemandForecast_NoObservations_ReturnsDefault(t *testing.T) {
	f := NewDemandForecast(5, 0.3, 0.1)
	assert.Equal(t, DefaultForecastDemand, f.Forecast(1))
	assert.Equal(t, 30, f.Forecast(4), "default does not depend on horizon")
}

func TestDemandForecast_FirstObservation_SetsLevelWithZeroTrend(t *testing.T) {
	// GIVEN a fresh forecaster
	f := NewDemandForecast(5, 0.3, 0.1)

	// WHEN one observation is recorded
	f.Update(42)

	// THEN level equals the observation and trend is zero
	assert.Equal(t, 42.0, f.Level())
	assert.Equal(t, 0.0, f.Trend())
	assert.Equal(t, 42, f.Forecast(1))
	assert.Equal(t, 42, f.Forecast(10))
}

func TestDemandForecast_HoltSmoothing_RisingSeries(t *testing.T) {
	// GIVEN a linearly rising series
	f := NewDemandForecast(5, 0.3, 0.1)
	for _, d := range []int{100, 110, 120, 130, 140} {
		f.Update(d)
	}

	// THEN level/trend follow Holt's recurrences with the old level captured before the trend update
	testutil.AssertFloat64Equal(t, "level", 123.763759, f.Level(), 1e-9)
	testutil.AssertFloat64Equal(t, "trend", 2.1235089, f.Trend(), 1e-9)
	assert.Equal(t, 125, f.Forecast(1))
	assert.Equal(t, 130, f.Forecast(3))
}

func TestDemandForecast_EqualFactors_HandComputed(t *testing.T) {
	// level: 10 -> 0.5*20+0.5*10=15 -> 0.5*15+0.5*(15+2.5)=16.25
	// trend: 0 -> 0.5*5=2.5 -> 0.5*1.25+0.5*2.5=1.875
	f := NewDemandForecast(5, 0.5, 0.5)
	for _, d := range []int{10, 20, 15} {
		f.Update(d)
	}
	assert.Equal(t, 16.25, f.Level())
	assert.Equal(t, 1.875, f.Trend())
	assert.Equal(t, 18, f.Forecast(1))
}

func TestDemandForecast_FallingSeries_FloorsAtZero(t *testing.T) {
	// GIVEN a steeply falling series with full weight on the latest values
	f := NewDemandForecast(3, 1, 1)
	f.Update(100)
	f.Update(10)

	// THEN a long horizon projection is clamped at zero, never negative
	assert.Equal(t, 10, f.Forecast(0))
	assert.Equal(t, 0, f.Forecast(5))
}

func TestDemandForecast_WindowSize_RetainsMostRecent(t *testing.T) {
	// GIVEN window size 5
	f := NewDemandForecast(5, 0.3, 0.1)

	// WHEN 10 observations are recorded
	for i := range 10 {
		f.Update(i)
	}

	// THEN exactly the 5 most recent are retained
	assert.Equal(t, []int{5, 6, 7, 8, 9}, f.History())
}

func TestNewDemandForecastFromConfig_UsesDemandSection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Demand["forecast_window"] = 2
	f := NewDemandForecastFromConfig(cfg)
	for _, d := range []int{1, 2, 3} {
		f.Update(d)
	}
	assert.Equal(t, []int{2, 3}, f.History())
}
