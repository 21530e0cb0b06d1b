package primitive

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
	"github.com/arloliu/segseq/internal/options"
	"github.com/arloliu/segseq/internal/ownership"
	"github.com/arloliu/segseq/internal/pool"
	"github.com/arloliu/segseq/internal/prefix"
	"github.com/arloliu/segseq/internal/slotset"
	"github.com/arloliu/segseq/internal/tagbuf"
	"github.com/arloliu/segseq/sequence"
)

// Handle is the stable identity of a segment spliced into a Store.
type Handle = ownership.Handle

// Store is a segmented sequence of integers normalized to one 64-bit width.
//
// Slots are raw uint64 words: the value bits of a Value slot, the handle of a
// SegmentRef slot, or zero for an Empty slot. The words carry no discriminant;
// the 2-bit tag of slot i in the tag buffer always equals the kind of slot i,
// and every slot mutation rewrites its tag in the same operation.
//
// Note: Store is NOT thread-safe.
type Store struct {
	*sequence.Config

	words  []uint64
	tags   *tagbuf.Buffer
	index  *prefix.Index
	table  *ownership.Table[[]uint64]
	vacant *slotset.Set
	kind   format.ElementKind
	closed bool
}

// New creates an empty Store for elements of kind.
//
// The kind is the store's width witness, fixed for its lifetime: every later
// append must carry values of the matching element type.
//
// Parameters:
//   - kind: format.KindInt32, KindUint32, KindInt64 or KindUint64
//   - opts: sequence options (WithReplacePolicy, WithLogger, WithCapacity)
//
// Returns:
//   - *Store: The new store
//   - error: ErrInvalidKind, or an option error
func New(kind format.ElementKind, opts ...sequence.Option) (*Store, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	cfg, err := sequence.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	if err := options.Apply(cfg, sequence.WithLogger(cfg.Logger().WithContainer("primitive"))); err != nil {
		return nil, err
	}

	return &Store{
		Config: cfg,
		words:  make([]uint64, 0, cfg.Capacity()),
		tags:   tagbuf.New(cfg.Capacity()),
		index:  prefix.New(cfg.Capacity()),
		table:  ownership.NewTable[[]uint64](),
		vacant: slotset.New(),
		kind:   kind,
	}, nil
}

// FromValues creates a Store with one Value slot per element of values.
//
// Returns:
//   - *Store: The new store, with prefix index 1, 2, ..., n
//   - error: ErrInvalidKind, ErrConfigMismatch if T does not match kind, or an option error
func FromValues[T Integer](kind format.ElementKind, values []T, opts ...sequence.Option) (*Store, error) {
	w, err := Normalize(kind, values)
	if err != nil {
		return nil, err
	}

	return fromWords(kind, w.words, opts...)
}

// FromWords creates a Store with one Value slot per normalized word.
//
// Every word must already be widened for kind: a KindInt32 word must be the
// sign extension of its low 32 bits and a KindUint32 word must have its high
// 32 bits clear. The words are copied.
//
// Returns:
//   - *Store: The new store, with prefix index 1, 2, ..., n
//   - error: ErrInvalidKind, ErrConfigMismatch for a word that is not normalized, or an option error
func FromWords(kind format.ElementKind, words []uint64, opts ...sequence.Option) (*Store, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	for i, w := range words {
		if !normalized(kind, w) {
			return nil, fmt.Errorf("%w: word %d (%#x) is not a normalized %s", errs.ErrConfigMismatch, i, w, kind)
		}
	}

	return fromWords(kind, words, opts...)
}

func fromWords(kind format.ElementKind, words []uint64, opts ...sequence.Option) (*Store, error) {
	s, err := New(kind, opts...)
	if err != nil {
		return nil, err
	}
	for _, word := range words {
		if err := s.tags.Append(format.SlotValue); err != nil {
			return nil, err
		}
		s.words = append(s.words, word)
		s.index.Extend(1)
	}

	return s, nil
}

// Kind returns the store's element kind.
func (s *Store) Kind() format.ElementKind {
	return s.kind
}

// AppendWords splices w into the end of the store as one slot in O(1).
//
// Parameters:
//   - w: Words from Normalize, not yet adopted
//
// Returns:
//   - Handle: Stable handle of the new segment
//   - error: ErrConfigMismatch if w was normalized for another kind,
//     ErrNilSegment, ErrSegmentAdopted, or ErrClosed
func (s *Store) AppendWords(w *Words) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}

	words, err := w.take(s.kind)
	if err != nil {
		return 0, err
	}

	if err := s.tags.Append(format.SlotSegment); err != nil {
		return 0, s.invariant(len(s.words), err)
	}
	h := s.table.Allocate()
	slot := len(s.words)
	if err := s.table.Insert(h, words, slot, len(words)); err != nil {
		return 0, err
	}
	s.words = append(s.words, uint64(h))
	s.index.Extend(len(words))

	s.Logger().LogAppend(context.Background(), uint64(h), slot, len(words), s.index.Total())

	return h, nil
}

// AppendValues normalizes values and appends them as one segment.
//
// Returns:
//   - Handle: Stable handle of the new segment
//   - error: ErrConfigMismatch if T does not match the store kind, or ErrClosed
func AppendValues[T Integer](s *Store, values []T) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}

	w, err := Normalize(s.kind, values)
	if err != nil {
		return 0, err
	}

	return s.AppendWords(w)
}

// ReadWord returns the raw 64-bit storage word at logical index i.
//
// Returns:
//   - uint64: Normalized word
//   - error: ErrOutOfBounds, ErrVacantSlot, ErrDeadSpace, or ErrClosed
func (s *Store) ReadWord(i int) (uint64, error) {
	ref, err := s.resolve(i)
	if err != nil {
		return 0, err
	}
	if ref.segment != nil {
		return ref.segment[ref.offset], nil
	}

	return s.words[ref.slot], nil
}

// ReadInt64 returns the element at logical index i of a signed store.
//
// Returns:
//   - error: ErrConfigMismatch for unsigned stores, or any ReadWord error
func (s *Store) ReadInt64(i int) (int64, error) {
	if !s.kind.Signed() {
		return 0, fmt.Errorf("%w: signed read from a %s store", errs.ErrConfigMismatch, s.kind)
	}
	w, err := s.ReadWord(i)
	if err != nil {
		return 0, err
	}

	return int64(w), nil //nolint:gosec // two's complement storage
}

// ReadUint64 returns the element at logical index i of an unsigned store.
//
// Returns:
//   - error: ErrConfigMismatch for signed stores, or any ReadWord error
func (s *Store) ReadUint64(i int) (uint64, error) {
	if s.kind.Signed() {
		return 0, fmt.Errorf("%w: unsigned read from a %s store", errs.ErrConfigMismatch, s.kind)
	}

	return s.ReadWord(i)
}

// Read returns the element at logical index i narrowed back to T.
//
// Returns:
//   - error: ErrConfigMismatch if T does not match the store kind, or any ReadWord error
func Read[T Integer](s *Store, i int) (T, error) {
	var zero T
	if err := matchKind[T](s.kind); err != nil {
		return zero, err
	}
	w, err := s.ReadWord(i)
	if err != nil {
		return zero, err
	}

	return decode[T](w), nil
}

// Write normalizes v and stores it at logical index i.
//
// Returns:
//   - error: ErrConfigMismatch if T does not match the store kind, or any ReadWord error
func Write[T Integer](s *Store, i int, v T) error {
	if err := matchKind[T](s.kind); err != nil {
		return err
	}
	ref, err := s.resolve(i)
	if err != nil {
		return err
	}
	if ref.segment != nil {
		ref.segment[ref.offset] = encode(v)
		return nil
	}
	s.words[ref.slot] = encode(v)

	return nil
}

type wordRef struct {
	segment []uint64
	slot    int
	offset  int
}

func (s *Store) resolve(i int) (wordRef, error) {
	if s.closed {
		return wordRef{}, errs.ErrClosed
	}

	slot, offset, err := s.index.Locate(i)
	if err != nil {
		return wordRef{}, err
	}
	kind, err := s.tags.Get(slot)
	if err != nil {
		return wordRef{}, s.invariant(slot, err)
	}

	switch kind {
	case format.SlotValue:
		if offset != 0 {
			return wordRef{}, fmt.Errorf("%w: index %d, value slot %d", errs.ErrDeadSpace, i, slot)
		}

		return wordRef{slot: slot}, nil
	case format.SlotSegment:
		h := Handle(s.words[slot])
		e, ok := s.table.Lookup(h)
		if !ok {
			return wordRef{}, s.invariant(slot, fmt.Errorf("%w: slot %d tagged %s with unknown handle %d", errs.ErrInvariant, slot, kind, h))
		}
		if offset >= len(e.Segment) {
			return wordRef{}, fmt.Errorf("%w: index %d, segment length %d at slot %d", errs.ErrDeadSpace, i, len(e.Segment), slot)
		}

		return wordRef{segment: e.Segment, slot: slot, offset: offset}, nil
	default:
		return wordRef{}, fmt.Errorf("%w: index %d, slot %d", errs.ErrVacantSlot, i, slot)
	}
}

// RemoveSegment releases the segment named by sel and marks its slot Empty.
//
// The ownership entry, slot word and tag change together; on any error
// nothing changes. The removed length stays reserved in the prefix index.
//
// Returns:
//   - error: ErrInvalidSelector, ErrOutOfBounds, ErrNotFound, ErrSlotState, or ErrClosed
func (s *Store) RemoveSegment(sel sequence.Selector) error {
	if s.closed {
		return errs.ErrClosed
	}

	slot, h, err := s.selectSegment(sel)
	if err != nil {
		s.Logger().LogRemove(context.Background(), uint64(h), slot, err)
		return err
	}

	e, err := s.table.Remove(h)
	if err != nil {
		return s.invariant(slot, fmt.Errorf("%w: %w", errs.ErrInvariant, err))
	}
	if err := s.tags.Set(slot, format.SlotEmpty); err != nil {
		return s.invariant(slot, fmt.Errorf("%w: %w", errs.ErrInvariant, err))
	}
	clear(e.Segment)
	s.words[slot] = 0
	s.vacant.Add(slot)

	s.Logger().LogRemove(context.Background(), uint64(h), slot, nil)

	return nil
}

func (s *Store) selectSegment(sel sequence.Selector) (int, Handle, error) {
	if err := sel.Validate(); err != nil {
		return 0, 0, err
	}

	if h, ok := sel.Handle(); ok {
		e, found := s.table.Lookup(h)
		if !found {
			return 0, h, fmt.Errorf("%w: handle %d", errs.ErrNotFound, h)
		}
		kind, err := s.tags.Get(e.Slot)
		if err != nil || kind != format.SlotSegment || Handle(s.words[e.Slot]) != h {
			return e.Slot, h, s.invariant(e.Slot, fmt.Errorf("%w: handle %d is not referenced by slot %d", errs.ErrInvariant, h, e.Slot))
		}

		return e.Slot, h, nil
	}

	slot, _ := sel.Slot()
	if slot < 0 || slot >= len(s.words) {
		return slot, 0, fmt.Errorf("%w: slot %d, slot count %d", errs.ErrOutOfBounds, slot, len(s.words))
	}
	kind, err := s.tags.Get(slot)
	if err != nil {
		return slot, 0, s.invariant(slot, err)
	}
	if kind != format.SlotSegment {
		return slot, 0, fmt.Errorf("%w: slot %d is %s, want %s", errs.ErrSlotState, slot, kind, format.SlotSegment)
	}

	return slot, Handle(s.words[slot]), nil
}

// ReplaceSlot fills an Empty slot with w, adjusting the prefix index according
// to the configured sequence.ReplacePolicy.
//
// Returns:
//   - Handle: Handle of the new segment
//   - error: ErrOutOfBounds, ErrSlotState, ErrConfigMismatch, ErrSegmentAdopted, or ErrClosed
func (s *Store) ReplaceSlot(slot int, w *Words) (Handle, error) {
	return s.replace(slot, w, true)
}

// ReplaceSlotUnchecked is ReplaceSlot without any prefix index adjustment.
// Call Reindex after a batch of unchecked replacements.
func (s *Store) ReplaceSlotUnchecked(slot int, w *Words) (Handle, error) {
	return s.replace(slot, w, false)
}

// ReplaceValues normalizes values and replaces an Empty slot with them.
func ReplaceValues[T Integer](s *Store, slot int, values []T) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}

	w, err := Normalize(s.kind, values)
	if err != nil {
		return 0, err
	}

	return s.ReplaceSlot(slot, w)
}

func (s *Store) replace(slot int, w *Words, adjust bool) (Handle, error) {
	if s.closed {
		return 0, errs.ErrClosed
	}
	if slot < 0 || slot >= len(s.words) {
		return 0, fmt.Errorf("%w: slot %d, slot count %d", errs.ErrOutOfBounds, slot, len(s.words))
	}
	kind, err := s.tags.Get(slot)
	if err != nil {
		return 0, s.invariant(slot, err)
	}
	if kind != format.SlotEmpty {
		return 0, fmt.Errorf("%w: slot %d is %s, want %s", errs.ErrSlotState, slot, kind, format.SlotEmpty)
	}

	words, err := w.take(s.kind)
	if err != nil {
		return 0, err
	}

	if adjust {
		if err := s.adjustIndex(slot, len(words)); err != nil {
			return 0, err
		}
	}

	if err := s.tags.Set(slot, format.SlotSegment); err != nil {
		return 0, s.invariant(slot, err)
	}
	h := s.table.Allocate()
	if err := s.table.Insert(h, words, slot, len(words)); err != nil {
		return 0, err
	}
	s.words[slot] = uint64(h)
	s.vacant.Remove(slot)

	s.Logger().LogReplace(context.Background(), uint64(h), slot, len(words), s.index.Total(), adjust)

	return h, nil
}

func (s *Store) adjustIndex(slot int, n int) error {
	if s.Policy() == sequence.ReplaceReuse {
		return s.index.ShiftFrom(slot, n-s.index.Span(slot))
	}

	return s.index.ShiftFrom(slot+1, n)
}

// Reindex rebuilds the prefix index from the live contents, dropping dead space.
func (s *Store) Reindex() error {
	if s.closed {
		return errs.ErrClosed
	}

	before := s.index.Total()
	spans, release := pool.GetIntSlice(len(s.words))
	defer release()
	for i := range s.words {
		spans[i] = 0
		kind, err := s.tags.Get(i)
		if err != nil {
			return s.invariant(i, err)
		}
		switch kind {
		case format.SlotValue:
			spans[i] = 1
		case format.SlotSegment:
			e, ok := s.table.Lookup(Handle(s.words[i]))
			if !ok {
				return s.invariant(i, fmt.Errorf("%w: slot %d references unknown handle %d", errs.ErrInvariant, i, s.words[i]))
			}
			spans[i] = len(e.Segment)
		case format.SlotEmpty:
		}
	}
	s.index.Rebuild(spans)

	s.Logger().LogReindex(context.Background(), before, s.index.Total())

	return nil
}

// Close releases every owned segment and clears the store.
// Every later operation fails with ErrClosed.
func (s *Store) Close() error {
	if s.closed {
		return errs.ErrClosed
	}

	released := 0
	for i, w := range s.words {
		if kind, err := s.tags.Get(i); err != nil || kind != format.SlotSegment {
			continue
		}
		if e, err := s.table.Remove(Handle(w)); err == nil {
			clear(e.Segment)
			released++
		}
	}
	s.table.Clear()
	s.words = nil
	s.tags.Reset()
	s.index.Reset()
	s.vacant.Clear()
	s.closed = true

	s.Logger().LogClose(context.Background(), released)

	return nil
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	return s.closed
}

// Len returns the total logical length, including reserved dead space.
func (s *Store) Len() int {
	return s.index.Total()
}

// IsEmpty reports whether the logical length, dead space included, is zero.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// SlotCount returns the number of physical slots.
func (s *Store) SlotCount() int {
	return len(s.words)
}

// SegmentCount returns the number of live owned segments.
func (s *Store) SegmentCount() int {
	return s.table.Len()
}

// SlotKind returns the kind of physical slot i, as recorded in the tag buffer.
func (s *Store) SlotKind(i int) (format.SlotKind, error) {
	if s.closed {
		return format.SlotEmpty, errs.ErrClosed
	}

	return s.tags.Get(i)
}

// SlotAt returns the raw word and the kind of physical slot i.
//
// A Value slot's word is the stored value, a SegmentRef slot's word is its
// handle and an Empty slot's word is zero.
//
// Returns:
//   - uint64: the slot word
//   - format.SlotKind: the slot kind
//   - error: ErrOutOfBounds or ErrClosed
func (s *Store) SlotAt(i int) (uint64, format.SlotKind, error) {
	kind, err := s.SlotKind(i)
	if err != nil {
		return 0, format.SlotEmpty, err
	}

	return s.words[i], kind, nil
}

// HandleAt returns the handle referenced by physical slot i.
//
// Returns:
//   - error: ErrSlotState if the slot is not a SegmentRef
func (s *Store) HandleAt(i int) (Handle, error) {
	w, kind, err := s.SlotAt(i)
	if err != nil {
		return 0, err
	}
	if kind != format.SlotSegment {
		return 0, fmt.Errorf("%w: slot %d is %s", errs.ErrSlotState, i, kind)
	}

	return Handle(w), nil
}

// Segment returns a copy of the words registered under h.
func (s *Store) Segment(h Handle) ([]uint64, error) {
	if s.closed {
		return nil, errs.ErrClosed
	}
	e, ok := s.table.Lookup(h)
	if !ok {
		return nil, fmt.Errorf("%w: handle %d", errs.ErrNotFound, h)
	}

	return slices.Clone(e.Segment), nil
}

// Tags returns a copy of the packed 2-bit slot tags, four slots per byte with
// the first slot in the high bits.
func (s *Store) Tags() []byte {
	return bytes.Clone(s.tags.Bytes())
}

// VacantSlots returns the Empty slots in ascending order.
func (s *Store) VacantSlots() []int {
	return s.vacant.Slots()
}

// Spans returns the logical length reserved by each slot, in slot order.
func (s *Store) Spans() []int {
	spans := make([]int, s.index.Len())
	for i := range spans {
		spans[i] = s.index.Span(i)
	}

	return spans
}

// All iterates the live words in logical order with their logical indexes.
// Empty slots, dead space and segment words past their slot's reserved
// length are skipped.
func (s *Store) All() iter.Seq2[int, uint64] {
	return func(yield func(int, uint64) bool) {
		if s.closed {
			return
		}
		for slot, w := range s.words {
			kind, err := s.tags.Get(slot)
			if err != nil {
				return
			}
			start := s.index.Start(slot)
			switch kind {
			case format.SlotValue:
				if !yield(start, w) {
					return
				}
			case format.SlotSegment:
				e, ok := s.table.Lookup(Handle(w))
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

// Flatten returns a copy of every live word in logical order.
func (s *Store) Flatten() ([]uint64, error) {
	if s.closed {
		return nil, errs.ErrClosed
	}

	out := make([]uint64, 0, s.index.Total())
	for _, w := range s.All() {
		out = append(out, w)
	}

	return out, nil
}

// Values returns every live element in logical order narrowed back to T.
//
// Returns:
//   - error: ErrConfigMismatch if T does not match the store kind, or ErrClosed
func Values[T Integer](s *Store) ([]T, error) {
	if err := matchKind[T](s.kind); err != nil {
		return nil, err
	}
	words, err := s.Flatten()
	if err != nil {
		return nil, err
	}

	out := make([]T, len(words))
	for i, w := range words {
		out[i] = decode[T](w)
	}

	return out, nil
}

// String renders the flattened view as decoded values, e.g. "[-1 2 3]".
func (s *Store) String() string {
	if s.closed {
		return "<closed>"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for _, w := range s.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		if s.kind.Signed() {
			sb.WriteString(strconv.FormatInt(int64(w), 10)) //nolint:gosec // two's complement storage
		} else {
			sb.WriteString(strconv.FormatUint(w, 10))
		}
	}
	sb.WriteByte(']')

	return sb.String()
}

// Check verifies that the tag buffer, slot words and ownership table agree.
//
// Returns:
//   - error: ErrInvariant describing the first inconsistency, or ErrClosed
func (s *Store) Check() error {
	if s.closed {
		return errs.ErrClosed
	}
	if s.tags.Len() != len(s.words) || s.index.Len() != len(s.words) {
		return s.invariant(-1, fmt.Errorf("%w: %d slots, %d tags, %d index entries",
			errs.ErrInvariant, len(s.words), s.tags.Len(), s.index.Len()))
	}

	live := 0
	for i, w := range s.words {
		kind, err := s.tags.Get(i)
		if err != nil {
			return s.invariant(i, err)
		}
		switch kind {
		case format.SlotSegment:
			e, ok := s.table.Lookup(Handle(w))
			if !ok || e.Slot != i {
				return s.invariant(i, fmt.Errorf("%w: slot %d handle %d has no matching entry", errs.ErrInvariant, i, w))
			}
			live++
		case format.SlotEmpty:
			if w != 0 || !s.vacant.Contains(i) {
				return s.invariant(i, fmt.Errorf("%w: empty slot %d holds %d or is not tracked as vacant", errs.ErrInvariant, i, w))
			}
		case format.SlotValue:
		}
	}
	if live != s.table.Len() {
		return s.invariant(-1, fmt.Errorf("%w: %d segment slots, %d ownership entries", errs.ErrInvariant, live, s.table.Len()))
	}

	return nil
}

func (s *Store) invariant(slot int, err error) error {
	s.Logger().LogInvariant(context.Background(), slot, err)
	return err
}
