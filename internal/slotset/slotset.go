// Package slotset keeps a compressed set of physical slot indexes.
//
// Containers use it to track vacant slots, the ones ReplaceSlot may fill.
package slotset

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// Set is a roaring-bitmap backed set of slot indexes.
type Set struct {
	rb *roaring.Bitmap
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Add inserts slot. Slots outside the 32-bit range are ignored.
func (s *Set) Add(slot int) {
	if !inRange(slot) {
		return
	}
	s.rb.Add(uint32(slot))
}

// Remove deletes slot.
func (s *Set) Remove(slot int) {
	if !inRange(slot) {
		return
	}
	s.rb.Remove(uint32(slot))
}

// Contains reports whether slot is in the set.
func (s *Set) Contains(slot int) bool {
	if !inRange(slot) {
		return false
	}

	return s.rb.Contains(uint32(slot))
}

// Len returns the number of slots in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality()) //nolint:gosec // bounded by the 32-bit slot range
}

// Slots returns the slots in ascending order.
func (s *Set) Slots() []int {
	out := make([]int, 0, s.Len())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}

// Clear removes every slot.
func (s *Set) Clear() {
	s.rb.Clear()
}

func inRange(slot int) bool {
	return slot >= 0 && uint64(slot) <= math.MaxUint32
}
