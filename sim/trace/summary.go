package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalSteps     int            `json:"total_steps"`
	ActionCounts   map[string]int `json:"action_counts"` // effective action → number of steps
	FallbackCount  int            `json:"fallback_count"`
	MeanCost       float64        `json:"mean_cost"`
	MaxCost        float64        `json:"max_cost"`
	PeakBackorders int            `json:"peak_backorders"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ActionCounts: make(map[string]int),
	}
	if st == nil || len(st.Steps) == 0 {
		return summary
	}

	summary.TotalSteps = len(st.Steps)
	totalCost := 0.0
	for i, r := range st.Steps {
		summary.ActionCounts[r.Action]++
		if r.Fallback {
			summary.FallbackCount++
		}
		totalCost += r.Cost
		if i == 0 || r.Cost > summary.MaxCost {
			summary.MaxCost = r.Cost
		}
		if r.Backorders > summary.PeakBackorders {
			summary.PeakBackorders = r.Backorders
		}
	}
	summary.MeanCost = totalCost / float64(len(st.Steps))

	return summary
}
