package sequence

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
	"github.com/arloliu/segseq/internal/ownership"
	"github.com/arloliu/segseq/internal/pool"
	"github.com/arloliu/segseq/internal/prefix"
	"github.com/arloliu/segseq/internal/slotset"
)

// Sequence is a segmented, indexable sequence of T.
//
// It owns its slot array, prefix index and ownership table. Every owned
// segment is referenced by exactly one slot and one ownership entry.
//
// Note: Sequence is NOT thread-safe.
type Sequence[T any] struct {
	*Config

	slots  []Slot[T]
	index  *prefix.Index
	table  *ownership.Table[[]T]
	vacant *slotset.Set
	closed bool
}

// New creates a Sequence with one Value slot per element of values.
//
// The prefix index becomes 1, 2, ..., n and the ownership table starts empty.
//
// Parameters:
//   - values: Initial elements, each stored inline in its own slot
//   - opts: Optional configuration (WithReplacePolicy, WithLogger, WithCapacity)
//
// Returns:
//   - *Sequence[T]: The new container
//   - error: ErrNestedSegment if the elements refer to container slots, or an option error
func New[T any](values []T, opts ...Option) (*Sequence[T], error) {
	if err := checkFlat(values); err != nil {
		return nil, err
	}

	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	cfg.logger = cfg.logger.WithContainer("sequence")

	slots := make([]Slot[T], 0, max(len(values), cfg.capacity))
	for _, v := range values {
		slots = append(slots, valueSlot(v))
	}

	index := prefix.Sequential(len(values))

	return &Sequence[T]{
		Config: cfg,
		slots:  slots,
		index:  index,
		table:  ownership.NewTable[[]T](),
		vacant: slotset.New(),
	}, nil
}

// AppendSegment splices seg into the end of the sequence as one slot.
//
// The cost is O(1) regardless of seg.Len(): the container adopts the segment's
// elements without copying, registers them under a new handle, appends one
// SegmentRef slot and extends the prefix index by the segment length.
//
// Parameters:
//   - seg: Segment created by Wrap and not yet adopted
//
// Returns:
//   - Handle: Stable handle of the new segment
//   - error: ErrNilSegment, ErrSegmentAdopted, or ErrClosed
func (s *Sequence[T]) AppendSegment(seg *Segment[T]) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}

	values, err := seg.take()
	if err != nil {
		return 0, err
	}

	h := s.table.Allocate()
	slot := len(s.slots)
	if err := s.table.Insert(h, values, slot, len(values)); err != nil {
		return 0, err
	}
	s.slots = append(s.slots, segmentSlot[T](h))
	s.index.Extend(len(values))

	s.logger.LogAppend(context.Background(), uint64(h), slot, len(values), s.index.Total())

	return h, nil
}

// AppendValues wraps values into a new segment and appends it.
//
// The copy is O(len(values)); the append itself is the same O(1) as AppendSegment.
//
// Returns:
//   - Handle: Stable handle of the new segment
//   - error: ErrNestedSegment or ErrClosed
func (s *Sequence[T]) AppendValues(values []T) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}

	seg, err := Wrap(values)
	if err != nil {
		return 0, err
	}

	return s.AppendSegment(seg)
}

// Read returns the element at logical index i.
//
// Out-of-range indexes are reported as errors, never panics.
//
// Parameters:
//   - i: Logical index in [0, Len())
//
// Returns:
//   - T: The element
//   - error: ErrOutOfBounds, ErrVacantSlot for a removed segment's range,
//     ErrDeadSpace for reserved length past a live segment, or ErrClosed
func (s *Sequence[T]) Read(i int) (T, error) {
	var zero T

	ref, err := s.resolve(i)
	if err != nil {
		return zero, err
	}
	if ref.segment != nil {
		return ref.segment[ref.offset], nil
	}

	return s.slots[ref.slot].value, nil
}

// Write overwrites the element at logical index i.
//
// Only Value slots and elements inside a live segment can be written;
// the range of a removed segment reports ErrVacantSlot.
//
// Returns:
//   - error: Same conditions as Read
func (s *Sequence[T]) Write(i int, v T) error {
	ref, err := s.resolve(i)
	if err != nil {
		return err
	}
	if ref.segment != nil {
		ref.segment[ref.offset] = v
		return nil
	}
	s.slots[ref.slot].value = v

	return nil
}

// elementRef locates one element: inline in slots[slot] when segment is nil,
// otherwise segment[offset].
type elementRef[T any] struct {
	segment []T
	slot    int
	offset  int
}

func (s *Sequence[T]) resolve(i int) (elementRef[T], error) {
	if s.closed {
		return elementRef[T]{}, errs.ErrClosed
	}

	slot, offset, err := s.index.Locate(i)
	if err != nil {
		return elementRef[T]{}, err
	}

	sl := s.slots[slot]
	switch sl.kind {
	case format.SlotValue:
		if offset != 0 {
			return elementRef[T]{}, fmt.Errorf("%w: index %d, value slot %d", errs.ErrDeadSpace, i, slot)
		}

		return elementRef[T]{slot: slot}, nil
	case format.SlotSegment:
		e, ok := s.table.Lookup(sl.handle)
		if !ok {
			return elementRef[T]{}, s.invariant(slot, fmt.Errorf("%w: slot %d references unknown handle %d", errs.ErrInvariant, slot, sl.handle))
		}
		if offset >= len(e.Segment) {
			return elementRef[T]{}, fmt.Errorf("%w: index %d, segment length %d at slot %d", errs.ErrDeadSpace, i, len(e.Segment), slot)
		}

		return elementRef[T]{segment: e.Segment, slot: slot, offset: offset}, nil
	case format.SlotEmpty:
		return elementRef[T]{}, fmt.Errorf("%w: index %d, slot %d", errs.ErrVacantSlot, i, slot)
	default:
		return elementRef[T]{}, s.invariant(slot, fmt.Errorf("%w: slot %d has kind %d", errs.ErrInvariant, slot, sl.kind))
	}
}

// RemoveSegment releases the segment named by sel and marks its slot Empty.
//
// The ownership entry and the slot change together; on any error nothing
// changes. The prefix index is untouched, so the removed length stays reserved.
//
// Parameters:
//   - sel: BySlot(i) or ByHandle(h)
//
// Returns:
//   - error: ErrInvalidSelector, ErrOutOfBounds for a bad slot, ErrNotFound for
//     an unknown handle, ErrSlotState if the slot is not a live SegmentRef, or ErrClosed
func (s *Sequence[T]) RemoveSegment(sel Selector) error {
	if s.closed {
		return errs.ErrClosed
	}

	slot, h, err := s.selectSegment(sel)
	if err != nil {
		s.logger.LogRemove(context.Background(), uint64(h), slot, err)
		return err
	}

	e, err := s.table.Remove(h)
	if err != nil {
		return s.invariant(slot, fmt.Errorf("%w: %w", errs.ErrInvariant, err))
	}
	clear(e.Segment)
	s.slots[slot] = Slot[T]{kind: format.SlotEmpty}
	s.vacant.Add(slot)

	s.logger.LogRemove(context.Background(), uint64(h), slot, nil)

	return nil
}

// selectSegment resolves sel to a slot holding a live SegmentRef.
func (s *Sequence[T]) selectSegment(sel Selector) (int, Handle, error) {
	if err := sel.Validate(); err != nil {
		return 0, 0, err
	}

	if h, ok := sel.Handle(); ok {
		e, found := s.table.Lookup(h)
		if !found {
			return 0, h, fmt.Errorf("%w: handle %d", errs.ErrNotFound, h)
		}
		if e.Slot < 0 || e.Slot >= len(s.slots) || s.slots[e.Slot].kind != format.SlotSegment || s.slots[e.Slot].handle != h {
			return e.Slot, h, s.invariant(e.Slot, fmt.Errorf("%w: handle %d is not referenced by slot %d", errs.ErrInvariant, h, e.Slot))
		}

		return e.Slot, h, nil
	}

	slot, _ := sel.Slot()
	if slot < 0 || slot >= len(s.slots) {
		return slot, 0, fmt.Errorf("%w: slot %d, slot count %d", errs.ErrOutOfBounds, slot, len(s.slots))
	}
	sl := s.slots[slot]
	if sl.kind != format.SlotSegment {
		return slot, 0, fmt.Errorf("%w: slot %d is %s, want %s", errs.ErrSlotState, slot, sl.kind, format.SlotSegment)
	}

	return slot, sl.handle, nil
}

// ReplaceSlot fills an Empty slot with a new segment holding a copy of values.
//
// The prefix index is adjusted according to the configured ReplacePolicy.
// Under ReplaceAdditive the total grows by len(values) and the removed
// segment's reserved length is kept; replacing the last slot leaves the total
// unchanged. Under ReplaceReuse the slot's reserved length becomes len(values).
//
// Parameters:
//   - slot: Physical slot index of an Empty slot
//   - values: Elements of the new segment
//
// Returns:
//   - Handle: Handle of the new segment
//   - error: ErrOutOfBounds, ErrSlotState if the slot is not Empty,
//     ErrNestedSegment, or ErrClosed
func (s *Sequence[T]) ReplaceSlot(slot int, values []T) (Handle, error) {
	return s.replace(slot, values, true)
}

// ReplaceSlotUnchecked is ReplaceSlot without any prefix index adjustment.
//
// The caller is responsible for index consistency, typically by calling
// Reindex once after a batch of unchecked replacements.
func (s *Sequence[T]) ReplaceSlotUnchecked(slot int, values []T) (Handle, error) {
	return s.replace(slot, values, false)
}

func (s *Sequence[T]) replace(slot int, values []T, adjust bool) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}
	if slot < 0 || slot >= len(s.slots) {
		return 0, fmt.Errorf("%w: slot %d, slot count %d", errs.ErrOutOfBounds, slot, len(s.slots))
	}
	if kind := s.slots[slot].kind; kind != format.SlotEmpty {
		return 0, fmt.Errorf("%w: slot %d is %s, want %s", errs.ErrSlotState, slot, kind, format.SlotEmpty)
	}

	seg, err := Wrap(values)
	if err != nil {
		return 0, err
	}
	owned, err := seg.take()
	if err != nil {
		return 0, err
	}

	if adjust {
		if err := s.adjustIndex(slot, len(owned)); err != nil {
			return 0, err
		}
	}

	h := s.table.Allocate()
	if err := s.table.Insert(h, owned, slot, len(owned)); err != nil {
		return 0, err
	}
	s.slots[slot] = segmentSlot[T](h)
	s.vacant.Remove(slot)

	s.logger.LogReplace(context.Background(), uint64(h), slot, len(owned), s.index.Total(), adjust)

	return h, nil
}

func (s *Sequence[T]) adjustIndex(slot int, n int) error {
	switch s.policy {
	case ReplaceReuse:
		return s.index.ShiftFrom(slot, n-s.index.Span(slot))
	default:
		return s.index.ShiftFrom(slot+1, n)
	}
}

// Reindex rebuilds the prefix index from the live contents in one pass.
//
// Value slots count 1, SegmentRef slots their segment length, and Empty slots 0,
// so every dead range is dropped and logical indexes after it move down.
func (s *Sequence[T]) Reindex() error {
	if s.closed {
		return errs.ErrClosed
	}

	before := s.index.Total()
	spans, release := pool.GetIntSlice(len(s.slots))
	defer release()
	for i, sl := range s.slots {
		spans[i] = 0
		switch sl.kind {
		case format.SlotValue:
			spans[i] = 1
		case format.SlotSegment:
			e, ok := s.table.Lookup(sl.handle)
			if !ok {
				return s.invariant(i, fmt.Errorf("%w: slot %d references unknown handle %d", errs.ErrInvariant, i, sl.handle))
			}
			spans[i] = len(e.Segment)
		case format.SlotEmpty:
		}
	}
	s.index.Rebuild(spans)

	s.logger.LogReindex(context.Background(), before, s.index.Total())

	return nil
}

// Close releases every owned segment and clears the container.
//
// Every later operation fails with ErrClosed, including a second Close.
func (s *Sequence[T]) Close() error {
	if s.closed {
		return errs.ErrClosed
	}

	released := 0
	for _, sl := range s.slots {
		if sl.kind != format.SlotSegment {
			continue
		}
		if e, err := s.table.Remove(sl.handle); err == nil {
			clear(e.Segment)
			released++
		}
	}
	s.table.Clear()
	clear(s.slots)
	s.slots = nil
	s.index.Reset()
	s.vacant.Clear()
	s.closed = true

	s.logger.LogClose(context.Background(), released)

	return nil
}

// Closed reports whether Close has been called.
func (s *Sequence[T]) Closed() bool {
	return s.closed
}

// Len returns the total logical length, including reserved dead space.
func (s *Sequence[T]) Len() int {
	return s.index.Total()
}

// IsEmpty reports whether the logical length, dead space included, is zero.
func (s *Sequence[T]) IsEmpty() bool {
	return s.Len() == 0
}

// SlotCount returns the number of physical slots.
func (s *Sequence[T]) SlotCount() int {
	return len(s.slots)
}

// SegmentCount returns the number of live owned segments.
func (s *Sequence[T]) SegmentCount() int {
	return s.table.Len()
}

// SlotAt returns physical slot i.
func (s *Sequence[T]) SlotAt(i int) (Slot[T], error) {
	if s.closed {
		return Slot[T]{}, errs.ErrClosed
	}
	if i < 0 || i >= len(s.slots) {
		return Slot[T]{}, fmt.Errorf("%w: slot %d, slot count %d", errs.ErrOutOfBounds, i, len(s.slots))
	}

	return s.slots[i], nil
}

// SlotKind returns the kind of physical slot i.
func (s *Sequence[T]) SlotKind(i int) (format.SlotKind, error) {
	sl, err := s.SlotAt(i)
	if err != nil {
		return format.SlotEmpty, err
	}

	return sl.kind, nil
}

// HandleAt returns the handle referenced by physical slot i.
//
// Returns:
//   - error: ErrSlotState if the slot is not a SegmentRef
func (s *Sequence[T]) HandleAt(i int) (Handle, error) {
	sl, err := s.SlotAt(i)
	if err != nil {
		return 0, err
	}
	h, ok := sl.Handle()
	if !ok {
		return 0, fmt.Errorf("%w: slot %d is %s", errs.ErrSlotState, i, sl.kind)
	}

	return h, nil
}

// Segment returns a copy of the segment registered under h.
func (s *Sequence[T]) Segment(h Handle) ([]T, error) {
	if s.closed {
		return nil, errs.ErrClosed
	}
	e, ok := s.table.Lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: handle %d", errs.ErrNotFound, h)
	}
	out := make([]T, len(e.Segment))
	copy(out, e.Segment)

	return out, nil
}

// VacantSlots returns the Empty slots in ascending order.
func (s *Sequence[T]) VacantSlots() []int {
	return s.vacant.Slots()
}

// Spans returns the logical length reserved by each slot, in slot order.
func (s *Sequence[T]) Spans() []int {
	spans := make([]int, s.index.Len())
	for i := range spans {
		spans[i] = s.index.Span(i)
	}

	return spans
}

// All iterates the live elements in logical order, yielding each element's
// logical index. Empty slots and dead space are skipped, as are segment
// elements past their slot's reserved length, which Read cannot reach either.
func (s *Sequence[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if s.closed {
			return
		}
		for slot, sl := range s.slots {
			start := s.index.Start(slot)
			switch sl.kind {
			case format.SlotValue:
				if !yield(start, sl.value) {
					return
				}
			case format.SlotSegment:
				e, ok := s.table.Lookup(sl.handle)
				if !ok {
					continue
				}
				n := min(len(e.Segment), s.index.Span(slot))
				for off, v := range e.Segment[:n] {
					if !yield(start+off, v) {
						return
					}
				}
			case format.SlotEmpty:
			}
		}
	}
}

// Flatten returns a copy of every live element in logical order.
//
// Returns:
//   - []T: Live elements, skipping Empty slots and dead space
//   - error: ErrClosed
func (s *Sequence[T]) Flatten() ([]T, error) {
	if s.closed {
		return nil, errs.ErrClosed
	}

	out := make([]T, 0, s.index.Total())
	for _, v := range s.All() {
		out = append(out, v)
	}

	return out, nil
}

// String renders the flattened view, e.g. "[1 2 3]".
func (s *Sequence[T]) String() string {
	if s.closed {
		return "<closed>"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for _, v := range s.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprint(&sb, v)
	}
	sb.WriteByte(']')

	return sb.String()
}

// Check verifies tag and ownership consistency: every SegmentRef slot has an
// entry pointing back at it, no entry is orphaned, and the index covers every slot.
//
// Returns:
//   - error: ErrInvariant describing the first inconsistency, or ErrClosed
func (s *Sequence[T]) Check() error {
	if s.closed {
		return errs.ErrClosed
	}
	if s.index.Len() != len(s.slots) {
		return s.invariant(-1, fmt.Errorf("%w: index has %d entries for %d slots", errs.ErrInvariant, s.index.Len(), len(s.slots)))
	}

	live := 0
	for i, sl := range s.slots {
		switch sl.kind {
		case format.SlotSegment:
			e, ok := s.table.Lookup(sl.handle)
			if !ok || e.Slot != i {
				return s.invariant(i, fmt.Errorf("%w: slot %d handle %d has no matching entry", errs.ErrInvariant, i, sl.handle))
			}
			live++
		case format.SlotEmpty:
			if !s.vacant.Contains(i) {
				return s.invariant(i, fmt.Errorf("%w: empty slot %d not tracked as vacant", errs.ErrInvariant, i))
			}
		case format.SlotValue:
		}
	}
	if live != s.table.Len() {
		return s.invariant(-1, fmt.Errorf("%w: %d segment slots, %d ownership entries", errs.ErrInvariant, live, s.table.Len()))
	}

	return nil
}

func (*Sequence[T]) slotRef() {}

func (s *Sequence[T]) invariant(slot int, err error) error {
	s.logger.LogInvariant(context.Background(), slot, err)
	return err
}
