// Implements DemandWindow, the bounded FIFO history of observed demand.

package sim

import (
	"fmt"
	"strings"
)

// DemandWindow is a fixed-capacity ring buffer of demand observations.
// Pushing into a full window evicts the oldest observation.
type DemandWindow struct {
	buf   []int
	start int // index of the oldest observation
	size  int
}

// NewDemandWindow creates a window holding at most capacity observations.
// Panics if capacity < 1.
func NewDemandWindow(capacity int) *DemandWindow {
	if capacity < 1 {
		panic(fmt.Sprintf("NewDemandWindow: capacity must be >= 1, got %d", capacity))
	}
	return &DemandWindow{buf: make([]int, capacity)}
}

// Push appends an observation, evicting the oldest one when the window is full.
func (w *DemandWindow) Push(v int) {
	if w.size < len(w.buf) {
		w.buf[(w.start+w.size)%len(w.buf)] = v
		w.size++
		return
	}
	w.buf[w.start] = v
	w.start = (w.start + 1) % len(w.buf)
}

// Len returns the number of observations held.
func (w *DemandWindow) Len() int {
	return w.size
}

// Cap returns the window capacity.
func (w *DemandWindow) Cap() int {
	return len(w.buf)
}

// Values returns a copy of the observations, oldest first.
func (w *DemandWindow) Values() []int {
	out := make([]int, w.size)
	for i := range w.size {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

func (w *DemandWindow) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range w.Values() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprint(v))
	}
	sb.WriteString("]")
	return sb.String()
}
