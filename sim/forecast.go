package sim

// DefaultForecastDemand is returned by Forecast before any demand has been observed.
const DefaultForecastDemand = 30

// DemandForecast estimates customer demand with Holt's linear (double
// exponential) smoothing over a bounded history of observations.
type DemandForecast struct {
	history *DemandWindow
	alpha   float64 // level smoothing factor
	beta    float64 // trend smoothing factor

	level    float64
	trend    float64
	observed bool
}

// NewDemandForecast creates a forecaster retaining the last windowSize observations.
// alpha and beta are expected in [0, 1]; Config.Validate enforces this for configured runs.
func NewDemandForecast(windowSize int, alpha, beta float64) *DemandForecast {
	return &DemandForecast{
		history: NewDemandWindow(windowSize),
		alpha:   alpha,
		beta:    beta,
	}
}

// NewDemandForecastFromConfig reads window and smoothing factors from the demand section.
func NewDemandForecastFromConfig(cfg *Config) *DemandForecast {
	return NewDemandForecast(
		cfg.Demand.Int("forecast_window"),
		cfg.Demand.Float("smoothing_alpha"),
		cfg.Demand.Float("smoothing_beta"),
	)
}

// Update records an observation and recomputes level and trend.
func (f *DemandForecast) Update(actualDemand int) {
	f.history.Push(actualDemand)
	d := float64(actualDemand)

	if !f.observed {
		f.level = d
		f.trend = 0
		f.observed = true
		return
	}

	lastLevel := f.level
	f.level = f.alpha*d + (1-f.alpha)*(f.level+f.trend)
	f.trend = f.beta*(f.level-lastLevel) + (1-f.beta)*f.trend
}

// Forecast projects demand stepsAhead steps forward, truncated to an integer
// and floored at zero.
func (f *DemandForecast) Forecast(stepsAhead int) int {
	if !f.observed {
		return DefaultForecastDemand
	}
	return max(int(f.level+float64(stepsAhead)*f.trend), 0)
}

// History returns the retained observations, oldest first.
func (f *DemandForecast) History() []int {
	return f.history.Values()
}

func (f *DemandForecast) Level() float64 { return f.level }
func (f *DemandForecast) Trend() float64 { return f.trend }
