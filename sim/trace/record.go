// Package trace provides per-step decision-trace recording for supply chain runs.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// StepRecord captures the action taken in one step and the flows it produced.
type StepRecord struct {
	Step           int     `json:"step"`
	Action         string  `json:"action"`   // effective action, or "pipeline" when no decider is used
	Label          string  `json:"label"`    // raw decider label; empty in pipeline mode
	Fallback       bool    `json:"fallback"` // label was unrecognized and supply ran instead
	Forecast       int     `json:"forecast"`
	Supply         int     `json:"supply"`
	Production     int     `json:"production"`
	Distribution   int     `json:"distribution"`
	Fulfilled      int     `json:"fulfilled"`
	Backorders     int     `json:"backorders"`
	Cost           float64 `json:"cost"`
	TotalInventory int     `json:"total_inventory"`
}
