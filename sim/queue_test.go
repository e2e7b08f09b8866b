package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemandWindow_Push_BelowCapacity_KeepsInsertionOrder(t *testing.T) {
	// GIVEN a window of capacity 3
	w := NewDemandWindow(3)

	// WHEN two values are pushed
	w.Push(10)
	w.Push(20)

	// THEN both are held oldest first
	assert.Equal(t, []int{10, 20}, w.Values())
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, 3, w.Cap())
}

func TestDemandWindow_Push_Full_EvictsOldest(t *testing.T) {
	// GIVEN a full window [1 2 3]
	w := NewDemandWindow(3)
	for _, v := range []int{1, 2, 3} {
		w.Push(v)
	}

	// WHEN two more values are pushed
	w.Push(4)
	w.Push(5)

	// THEN the two oldest are evicted and the length stays at capacity
	assert.Equal(t, []int{3, 4, 5}, w.Values())
	assert.Equal(t, 3, w.Len())
}

func TestDemandWindow_ManyWraps_RetainsMostRecent(t *testing.T) {
	w := NewDemandWindow(4)
	for i := range 103 {
		w.Push(i)
	}
	assert.Equal(t, []int{99, 100, 101, 102}, w.Values())
}

func TestDemandWindow_Values_ReturnsCopy(t *testing.T) {
	w := NewDemandWindow(2)
	w.Push(7)
	vals := w.Values()
	vals[0] = 99
	assert.Equal(t, []int{7}, w.Values(), "mutating the returned slice must not touch the window")
}

func TestDemandWindow_String(t *testing.T) {
	w := NewDemandWindow(2)
	assert.Equal(t, "[]", w.String())
	w.Push(1)
	w.Push(2)
	w.Push(3)
	assert.Equal(t, "[2 3]", w.String())
}

func TestNewDemandWindow_ZeroCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDemandWindow(0) })
}
