package primitive

import (
	"fmt"

	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
)

// Integer is the set of element types a Store accepts.
//
// Each type matches exactly one format.ElementKind: int32 with KindInt32,
// uint32 with KindUint32, int64 with KindInt64 and uint64 with KindUint64.
type Integer interface {
	int32 | uint32 | int64 | uint64
}

// kindOf returns the element kind matching T.
func kindOf[T Integer]() format.ElementKind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return format.KindInt32
	case uint32:
		return format.KindUint32
	case int64:
		return format.KindInt64
	default:
		return format.KindUint64
	}
}

// checkKind validates a store kind.
func checkKind(kind format.ElementKind) error {
	if !kind.Integer() {
		return fmt.Errorf("%w: %s", errs.ErrInvalidKind, kind)
	}

	return nil
}

// matchKind reports ErrConfigMismatch unless T is the element type of kind.
func matchKind[T Integer](kind format.ElementKind) error {
	if got := kindOf[T](); got != kind {
		return fmt.Errorf("%w: %s values for a %s store", errs.ErrConfigMismatch, got, kind)
	}

	return nil
}

// encode widens v to its 64-bit storage word.
//
// Signed values are sign-extended and unsigned values zero-extended.
func encode[T Integer](v T) uint64 {
	switch x := any(v).(type) {
	case int32:
		return uint64(int64(x)) //nolint:gosec // two's complement storage
	case uint32:
		return uint64(x)
	case int64:
		return uint64(x) //nolint:gosec // two's complement storage
	case uint64:
		return x
	default:
		return 0
	}
}

// decode narrows a storage word back to T.
func decode[T Integer](w uint64) T {
	var zero T
	switch any(zero).(type) {
	case int32:
		return any(int32(int64(w))).(T) //nolint:gosec // word was sign-extended from int32
	case uint32:
		return any(uint32(w)).(T) //nolint:gosec // word was zero-extended from uint32
	case int64:
		return any(int64(w)).(T) //nolint:gosec // two's complement storage
	default:
		return any(w).(T)
	}
}

// normalized reports whether w is a valid widened word for kind.
func normalized(kind format.ElementKind, w uint64) bool {
	switch kind {
	case format.KindInt32:
		return w == encode(int32(uint32(w))) //nolint:gosec // truncation is the check
	case format.KindUint32:
		return w>>32 == 0
	default:
		return true
	}
}

// Words is a run of normalized 64-bit storage words tagged with the element
// kind they were normalized from.
//
// Words are created by Normalize and adopted by exactly one Store through
// AppendWords or ReplaceSlot.
type Words struct {
	words   []uint64
	kind    format.ElementKind
	adopted bool
}

// Normalize converts values to the single 64-bit physical width of a store of kind.
//
// int32 values are sign-extended, uint32 values zero-extended, and 64-bit values
// are copied as-is. The element type must match kind exactly; a narrower or
// differently signed type is a configuration error, never silently coerced.
//
// Parameters:
//   - kind: Width witness of the target store
//   - values: Source values
//
// Returns:
//   - *Words: Normalized words ready for AppendWords
//   - error: ErrInvalidKind for a non-integer kind, ErrConfigMismatch if T does not match kind
func Normalize[T Integer](kind format.ElementKind, values []T) (*Words, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	if err := matchKind[T](kind); err != nil {
		return nil, err
	}

	words := make([]uint64, len(values))
	for i, v := range values {
		words[i] = encode(v)
	}

	return &Words{words: words, kind: kind}, nil
}

// Kind returns the element kind the words were normalized from.
func (w *Words) Kind() format.ElementKind {
	return w.kind
}

// Len returns the number of words. It is 0 once the words are adopted.
func (w *Words) Len() int {
	return len(w.words)
}

// Adopted reports whether a store has taken ownership of the words.
func (w *Words) Adopted() bool {
	return w.adopted
}

// take transfers the words to a store of kind and spends w.
func (w *Words) take(kind format.ElementKind) ([]uint64, error) {
	if w == nil {
		return nil, errs.ErrNilSegment
	}
	if w.adopted {
		return nil, errs.ErrSegmentAdopted
	}
	if w.kind != kind {
		return nil, fmt.Errorf("%w: %s words for a %s store", errs.ErrConfigMismatch, w.kind, kind)
	}
	words := w.words
	w.words = nil
	w.adopted = true

	return words, nil
}
