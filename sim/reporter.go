package sim

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
)

// Reporter observes each completed step. Implementations must not mutate state.
type Reporter interface {
	Report(state State, step int, action string, changes map[string]int)
}

// NopReporter discards every report.
type NopReporter struct{}

func (NopReporter) Report(State, int, string, map[string]int) {}

// LogReporter emits one structured logrus entry per step at debug level.
type LogReporter struct {
	Logger logrus.FieldLogger
}

func NewLogReporter() *LogReporter {
	return &LogReporter{Logger: logrus.StandardLogger()}
}

func (r *LogReporter) Report(state State, step int, action string, changes map[string]int) {
	fields := logrus.Fields{
		"step":   step,
		"action": action,
	}
	for k, v := range changes {
		fields[k] = v
	}
	for k, v := range state.AsMap() {
		fields["state."+k] = v
	}
	r.Logger.WithFields(fields).Debug("step complete")
}

// TextReporter writes a human-readable block per step:
//
//	--- Step 3: Distribution ---
//	retail_supply: 20
type TextReporter struct {
	W io.Writer
}

func (r TextReporter) Report(state State, step int, action string, changes map[string]int) {
	fmt.Fprintf(r.W, "\n--- Step %d: %s ---\n", step, action)
	for _, k := range slices.Sorted(maps.Keys(changes)) {
		fmt.Fprintf(r.W, "%s: %d\n", k, changes[k])
	}
}
