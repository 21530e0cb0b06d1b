package sequence

import (
	"fmt"

	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
	"github.com/arloliu/segseq/internal/ownership"
)

// Handle is the stable identity of a segment spliced into a container.
//
// Handles start at 1 and are never reused by the container that issued them.
type Handle = ownership.Handle

// slotRef is implemented by every type that refers to container slots.
// Values of such types may not be stored as elements, which keeps segments
// one level deep.
type slotRef interface {
	slotRef()
}

// Slot is one physical slot of a Sequence.
//
// Exactly one of the following holds:
//   - Kind() == format.SlotEmpty: no value and no segment
//   - Kind() == format.SlotValue: Value() returns the inline element
//   - Kind() == format.SlotSegment: Handle() names the owned segment
type Slot[T any] struct {
	value  T
	handle Handle
	kind   format.SlotKind
}

func valueSlot[T any](v T) Slot[T] {
	return Slot[T]{kind: format.SlotValue, value: v}
}

func segmentSlot[T any](h Handle) Slot[T] {
	return Slot[T]{kind: format.SlotSegment, handle: h}
}

// Kind returns the slot kind.
func (s Slot[T]) Kind() format.SlotKind {
	return s.kind
}

// Value returns the inline element of a Value slot.
func (s Slot[T]) Value() (T, bool) {
	if s.kind != format.SlotValue {
		var zero T
		return zero, false
	}

	return s.value, true
}

// Handle returns the segment handle of a SegmentRef slot.
func (s Slot[T]) Handle() (Handle, bool) {
	if s.kind != format.SlotSegment {
		return 0, false
	}

	return s.handle, true
}

func (Slot[T]) slotRef() {}

// Segment is a run of elements prepared for splicing into a Sequence.
//
// Segments are created by Wrap and adopted by exactly one container through
// AppendSegment. After adoption the container owns the elements and the
// Segment value is spent.
type Segment[T any] struct {
	values  []T
	adopted bool
}

// Wrap copies values into a new Segment.
//
// This is the O(n) conversion step of an append; AppendSegment itself is O(1).
// Callers that build segments ahead of time pay the copy outside the container.
//
// Parameters:
//   - values: Elements of the segment, in logical order
//
// Returns:
//   - *Segment[T]: Segment ready for AppendSegment
//   - error: ErrNestedSegment if an element refers to container slots
func Wrap[T any](values []T) (*Segment[T], error) {
	if err := checkFlat(values); err != nil {
		return nil, err
	}

	owned := make([]T, len(values))
	copy(owned, values)

	return &Segment[T]{values: owned}, nil
}

// Len returns the number of elements. It is 0 once the segment is adopted.
func (s *Segment[T]) Len() int {
	return len(s.values)
}

// Adopted reports whether a container has taken ownership of the segment.
func (s *Segment[T]) Adopted() bool {
	return s.adopted
}

// take transfers the elements to the caller and spends the segment.
func (s *Segment[T]) take() ([]T, error) {
	if s == nil {
		return nil, errs.ErrNilSegment
	}
	if s.adopted {
		return nil, errs.ErrSegmentAdopted
	}
	values := s.values
	s.values = nil
	s.adopted = true

	return values, nil
}

func (*Segment[T]) slotRef() {}

// checkFlat rejects element types that refer to container slots.
//
// A concrete element type is checked once through its zero value; interface
// element types are checked per element.
func checkFlat[T any](values []T) error {
	var zero T
	if any(zero) != nil {
		if _, ok := any(zero).(slotRef); ok {
			return fmt.Errorf("%w: element type %T", errs.ErrNestedSegment, zero)
		}

		return nil
	}

	for i, v := range values {
		if _, ok := any(v).(slotRef); ok {
			return fmt.Errorf("%w: element %d is %T", errs.ErrNestedSegment, i, v)
		}
	}

	return nil
}
