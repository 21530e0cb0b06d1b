// Package segseq provides segmented, indexable sequence containers.
//
// A segmented sequence is a flat list of slots in which any slot may stand for
// a whole independently owned segment of elements. Appending a segment of any
// length costs one slot, while reads and writes still address elements by
// their logical index through a cumulative-length prefix index.
//
// # Core Features
//
//   - O(1) segment append regardless of segment length
//   - O(log k) logical index resolution over k slots
//   - Stable segment handles that are never reused
//   - Segment removal and replacement with two index policies
//   - A compact integer store with 2-bit slot tags and normalized 64-bit words
//   - Compressed, checksummed snapshots of the flattened view
//
// # Basic Usage
//
// Generic sequences hold any element type:
//
//	import "github.com/arloliu/segseq"
//
//	seq, _ := segseq.NewSequence([]string{"a", "b"})
//	h, _ := seq.AppendValues([]string{"c", "d", "e"})
//	v, _ := seq.Read(3) // "d"
//	_ = seq.RemoveSegment(sequence.ByHandle(h))
//
// Integer stores keep every element as one 64-bit word:
//
//	store, _ := segseq.NewInt32Store([]int32{1, 2, 3})
//	_, _ = primitive.AppendValues(store, []int32{-1, -2})
//	fp, _ := segseq.Fingerprint(store)
//
// # Package Structure
//
// This package provides top-level wrappers around the sequence, primitive and
// snapshot packages for the most common use cases. For fine-grained control,
// use those packages directly.
package segseq

import (
	"github.com/arloliu/segseq/bitbuf"
	"github.com/arloliu/segseq/format"
	"github.com/arloliu/segseq/internal/hash"
	"github.com/arloliu/segseq/primitive"
	"github.com/arloliu/segseq/sequence"
	"github.com/arloliu/segseq/snapshot"
)

// NewSequence creates a generic sequence with one Value slot per element.
//
// Parameters:
//   - values: Initial elements, copied into the sequence
//   - opts: Optional configuration (see sequence.Option)
//
// Returns:
//   - *sequence.Sequence[T]: The created sequence
//   - error: ErrNestedSegment if an element is itself a container, or an option error
//
// Available options:
//   - sequence.WithReplacePolicy(sequence.ReplaceAdditive|ReplaceReuse)
//   - sequence.WithLogger(logger)
//   - sequence.WithCapacity(n)
//
// Example:
//
//	seq, err := segseq.NewSequence([]int{1, 2, 3},
//	    sequence.WithReplacePolicy(sequence.ReplaceReuse),
//	)
func NewSequence[T any](values []T, opts ...sequence.Option) (*sequence.Sequence[T], error) {
	return sequence.New(values, opts...)
}

// NewCompactSequence creates a generic sequence using the reuse replace policy.
//
// Under reuse, ReplaceSlot resizes the vacated slot to the new segment length,
// so replacing a segment never leaves dead space behind. Options given in opts
// are applied after the policy and may override it.
func NewCompactSequence[T any](values []T, opts ...sequence.Option) (*sequence.Sequence[T], error) {
	allOpts := append([]sequence.Option{sequence.WithReplacePolicy(sequence.ReplaceReuse)}, opts...)
	return sequence.New(values, allOpts...)
}

// NewStore creates an empty integer store for elements of kind.
//
// Parameters:
//   - kind: format.KindInt32, KindUint32, KindInt64 or KindUint64
//   - opts: Optional configuration (see sequence.Option)
//
// Returns:
//   - *primitive.Store: The created store
//   - error: ErrInvalidKind, or an option error
func NewStore(kind format.ElementKind, opts ...sequence.Option) (*primitive.Store, error) {
	return primitive.New(kind, opts...)
}

// NewInt32Store creates a store of int32 elements, sign-extended to 64-bit words.
func NewInt32Store(values []int32, opts ...sequence.Option) (*primitive.Store, error) {
	return primitive.FromValues(format.KindInt32, values, opts...)
}

// NewUint32Store creates a store of uint32 elements, zero-extended to 64-bit words.
func NewUint32Store(values []uint32, opts ...sequence.Option) (*primitive.Store, error) {
	return primitive.FromValues(format.KindUint32, values, opts...)
}

// NewInt64Store creates a store of int64 elements.
func NewInt64Store(values []int64, opts ...sequence.Option) (*primitive.Store, error) {
	return primitive.FromValues(format.KindInt64, values, opts...)
}

// NewUint64Store creates a store of uint64 elements.
func NewUint64Store(values []uint64, opts ...sequence.Option) (*primitive.Store, error) {
	return primitive.FromValues(format.KindUint64, values, opts...)
}

// NewBitBuffer creates a zero-filled bit buffer of byteSize bytes.
func NewBitBuffer(byteSize int) *bitbuf.Buffer {
	return bitbuf.New(byteSize)
}

// Fingerprint returns the 64-bit xxHash of the store's flattened view.
//
// Two stores with equal live elements in equal order have equal fingerprints,
// regardless of how the elements are split into segments.
//
// Returns:
//   - uint64: Fingerprint of the normalized words
//   - error: ErrClosed if the store was closed
func Fingerprint(s *primitive.Store) (uint64, error) {
	words, err := s.Flatten()
	if err != nil {
		return 0, err
	}

	return hash.Fingerprint(words), nil
}

// Key returns the 64-bit xxHash of name.
//
// It maps string identifiers onto uint64 store elements.
//
// Example:
//
//	keys, _ := segseq.NewUint64Store([]uint64{segseq.Key("cpu"), segseq.Key("mem")})
func Key(name string) uint64 {
	return hash.FingerprintString(name)
}

// Snapshot encodes the store's flattened view with default snapshot settings
// (little-endian, zstd).
func Snapshot(s *primitive.Store, opts ...snapshot.Option) ([]byte, error) {
	return snapshot.EncodeStore(s, opts...)
}

// Restore rebuilds a store from a snapshot produced by Snapshot.
func Restore(data []byte, opts ...sequence.Option) (*primitive.Store, error) {
	return snapshot.DecodeStore(data, opts...)
}
