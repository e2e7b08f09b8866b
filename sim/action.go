package sim

// Action is the pipeline stage selected by a Decider for one step.
type Action int

const (
	ActionUnknown Action = iota
	ActionSupply
	ActionManufacture
	ActionDistribute
)

var actionLabels = map[string]Action{
	"supply":      ActionSupply,
	"manufacture": ActionManufacture,
	"distribute":  ActionDistribute,
}

// ValidActionLabels lists the recognized action labels in pipeline order.
func ValidActionLabels() []string {
	return []string{"supply", "manufacture", "distribute"}
}

// ParseAction maps a decider label to an Action. Unrecognized labels yield
// ActionUnknown together with an *UnrecognizedActionError.
func ParseAction(label string) (Action, error) {
	if a, ok := actionLabels[label]; ok {
		return a, nil
	}
	return ActionUnknown, &UnrecognizedActionError{Label: label}
}

func (a Action) String() string {
	switch a {
	case ActionSupply:
		return "supply"
	case ActionManufacture:
		return "manufacture"
	case ActionDistribute:
		return "distribute"
	default:
		return "unknown"
	}
}

// Effective returns the action actually executed: ActionUnknown falls back to supply.
func (a Action) Effective() Action {
	if a == ActionUnknown {
		return ActionSupply
	}
	return a
}
