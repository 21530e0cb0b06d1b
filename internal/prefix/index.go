// Package prefix implements the cumulative-length index that maps a logical
// index onto a physical slot and an offset inside it.
package prefix

import (
	"fmt"
	"sort"

	"github.com/arloliu/segseq/errs"
)

// Index holds P[i], the cumulative logical length through slot i.
//
// P is non-decreasing. The total logical length is P[len-1], or 0 when empty.
type Index struct {
	ends []int
}

// New creates an empty index with room for capacity slots.
func New(capacity int) *Index {
	return &Index{ends: make([]int, 0, max(capacity, 0))}
}

// Sequential creates the index of n single-element slots: 1, 2, ..., n.
func Sequential(n int) *Index {
	idx := New(n)
	for i := 1; i <= n; i++ {
		idx.ends = append(idx.ends, i)
	}

	return idx
}

// Len returns the number of slots in the index.
func (x *Index) Len() int {
	return len(x.ends)
}

// Total returns the total logical length.
func (x *Index) Total() int {
	if len(x.ends) == 0 {
		return 0
	}

	return x.ends[len(x.ends)-1]
}

// Start returns the first logical index covered by slot.
func (x *Index) Start(slot int) int {
	if slot <= 0 {
		return 0
	}

	return x.ends[slot-1]
}

// End returns P[slot], the logical index just past slot.
func (x *Index) End(slot int) int {
	return x.ends[slot]
}

// Span returns the logical length reserved by slot.
func (x *Index) Span(slot int) int {
	return x.ends[slot] - x.Start(slot)
}

// Locate resolves a logical index to its slot and the offset inside that slot.
//
// The slot is the first one whose cumulative end exceeds i, found by binary search
// in O(log k) for k slots.
//
// Returns:
//   - int: Physical slot index
//   - int: Offset of i inside the slot
//   - error: ErrOutOfBounds if i is negative or not less than Total()
func (x *Index) Locate(i int) (int, int, error) {
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: logical index %d", errs.ErrOutOfBounds, i)
	}
	slot := sort.Search(len(x.ends), func(s int) bool { return x.ends[s] > i })
	if slot >= len(x.ends) {
		return 0, 0, fmt.Errorf("%w: logical index %d, length %d", errs.ErrOutOfBounds, i, x.Total())
	}

	return slot, i - x.Start(slot), nil
}

// Extend appends a slot contributing n logical elements.
func (x *Index) Extend(n int) {
	x.ends = append(x.ends, x.Total()+n)
}

// ShiftFrom adds delta to every cumulative end at or after slot.
//
// A slot past the end is a no-op. A negative delta must not make any slot span
// negative; such a shift is rejected with ErrInvariant and nothing changes.
func (x *Index) ShiftFrom(slot int, delta int) error {
	if slot < 0 {
		return fmt.Errorf("%w: shift from slot %d", errs.ErrOutOfBounds, slot)
	}
	if slot >= len(x.ends) || delta == 0 {
		return nil
	}
	if delta < 0 && x.Span(slot)+delta < 0 {
		return fmt.Errorf("%w: shifting slot %d by %d makes its span negative", errs.ErrInvariant, slot, delta)
	}
	for i := slot; i < len(x.ends); i++ {
		x.ends[i] += delta
	}

	return nil
}

// Rebuild replaces the index with the cumulative sums of spans.
func (x *Index) Rebuild(spans []int) {
	x.ends = x.ends[:0]
	total := 0
	for _, n := range spans {
		total += n
		x.ends = append(x.ends, total)
	}
}

// Reset drops every slot.
func (x *Index) Reset() {
	x.ends = x.ends[:0]
}

// Ends returns a copy of the cumulative ends.
func (x *Index) Ends() []int {
	out := make([]int, len(x.ends))
	copy(out, x.ends)

	return out
}
