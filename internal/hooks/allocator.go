// Package hooks hands out virtual stack slots ("hooks"). A hook is an
// index into the entry frame; the high-water mark is the number of slots
// the frame has to reserve.
package hooks

import (
	"golang.org/x/exp/slices"
)

// None is the sentinel handle carried by values that failed to lower.
const None = -1

type Allocator struct {
	max  int
	free []int // released handles, ascending
}

func New() *Allocator {
	return &Allocator{}
}

// Alloc returns the lowest released handle, or grows the frame by one.
func (a *Allocator) Alloc() int {
	if len(a.free) > 0 {
		h := a.free[0]
		a.free = slices.Delete(a.free, 0, 1)
		return h
	}
	h := a.max
	a.max++
	return h
}

// Release returns h to the pool. The sentinel and handles that are already
// free are ignored.
func (a *Allocator) Release(h int) {
	if h < 0 || h >= a.max {
		return
	}
	i, found := slices.BinarySearch(a.free, h)
	if found {
		return
	}
	a.free = slices.Insert(a.free, i, h)
}

// HighWater is the number of distinct handles ever handed out.
func (a *Allocator) HighWater() int {
	return a.max
}

// InUse counts handles currently allocated.
func (a *Allocator) InUse() int {
	return a.max - len(a.free)
}

// IsFree reports whether h is currently released.
func (a *Allocator) IsFree(h int) bool {
	_, found := slices.BinarySearch(a.free, h)
	return found
}

// State is a saved allocator position.
type State struct {
	max  int
	free []int
}

func (a *Allocator) Snapshot() State {
	return State{max: a.max, free: slices.Clone(a.free)}
}

func (a *Allocator) Restore(s State) {
	a.max = s.max
	a.free = slices.Clone(s.free)
}
