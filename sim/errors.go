package sim

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid configuration value found by Config.Validate.
type ConfigurationError struct {
	Section string
	Option  string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s.%s: %s", e.Section, e.Option, e.Reason)
}

// StateValidationError reports a supply chain state that is missing required
// keys or carries a negative value.
type StateValidationError struct {
	Missing []string // sorted; empty when the error is about a negative value
	Field   string
	Value   int
}

func (e *StateValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required state keys: {%s}", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("negative value not allowed for %s: %d", e.Field, e.Value)
}

// UnrecognizedActionError is returned by ParseAction for labels outside the
// known action set. It is non-fatal: the simulator logs it and falls back to
// the supply action.
type UnrecognizedActionError struct {
	Label string
}

func (e *UnrecognizedActionError) Error() string {
	return fmt.Sprintf("unrecognized action %q, falling back to %q", e.Label, ActionSupply.String())
}
