package ownership

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/segseq/errs"
)

// Handle is the stable identity of a spliced segment.
//
// Handles are issued by Table.Allocate, start at 1 and are never reused by
// the table that issued them, so a stale handle misses instead of aliasing a
// newer segment. The zero Handle is never valid.
type Handle uint64

// Entry is the ownership record of one spliced segment.
type Entry[S any] struct {
	Segment S   // Segment is the owned segment payload.
	Slot    int // Slot is the physical slot index referencing the segment.
	Length  int // Length is the logical length of the segment.
}

// Table maps segment handles to their ownership records.
//
// The table is the single owner of every registered segment: Remove is the
// only place a segment leaves it, and callers must not keep the segment after
// removing it.
type Table[S any] struct {
	entries map[Handle]Entry[S]
	next    Handle
}

// NewTable creates an empty ownership table.
func NewTable[S any]() *Table[S] {
	return &Table[S]{
		entries: make(map[Handle]Entry[S]),
		next:    1,
	}
}

// Allocate reserves the next handle. The handle is not registered until Insert.
func (t *Table[S]) Allocate() Handle {
	h := t.next
	t.next++

	return h
}

// Insert registers a segment under h.
//
// Returns:
//   - error: ErrDuplicateHandle if h is already registered, ErrNotFound if h was never allocated
func (t *Table[S]) Insert(h Handle, segment S, slot int, length int) error {
	if h == 0 || h >= t.next {
		return fmt.Errorf("%w: handle %d was not allocated", errs.ErrNotFound, h)
	}
	if _, exists := t.entries[h]; exists {
		return fmt.Errorf("%w: handle %d", errs.ErrDuplicateHandle, h)
	}
	t.entries[h] = Entry[S]{Segment: segment, Slot: slot, Length: length}

	return nil
}

// Remove unregisters h and returns its record.
func (t *Table[S]) Remove(h Handle) (Entry[S], error) {
	e, ok := t.entries[h]
	if !ok {
		return Entry[S]{}, fmt.Errorf("%w: handle %d", errs.ErrNotFound, h)
	}
	delete(t.entries, h)

	return e, nil
}

// Lookup returns the record registered under h.
func (t *Table[S]) Lookup(h Handle) (Entry[S], bool) {
	e, ok := t.entries[h]
	return e, ok
}

// Len returns the number of live segments.
func (t *Table[S]) Len() int {
	return len(t.entries)
}

// All iterates the live entries in handle order.
func (t *Table[S]) All() iter.Seq2[Handle, Entry[S]] {
	return func(yield func(Handle, Entry[S]) bool) {
		handles := make([]Handle, 0, len(t.entries))
		for h := range t.entries {
			handles = append(handles, h)
		}
		slices.Sort(handles)
		for _, h := range handles {
			if !yield(h, t.entries[h]) {
				return
			}
		}
	}
}

// Clear drops every entry. Handles keep counting from where they were.
func (t *Table[S]) Clear() {
	clear(t.entries)
}
