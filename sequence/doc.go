// Package sequence implements a segmented, indexable sequence container.
//
// A Sequence is an array of physical slots. Each slot is Empty, holds one
// inline Value, or references an owned segment: an independently allocated
// []T spliced into the logical sequence as a single slot. A cumulative-length
// prefix index maps a logical index to its slot in O(log k) for k slots, so
// appending a segment of any length costs one slot and one ownership record.
//
// # Basic Usage
//
//	seq, err := sequence.New([]int{1, 2, 3, 4, 5})
//	if err != nil {
//	    return err
//	}
//
//	h, err := seq.AppendValues([]int{6, 7, 8})
//	v, err := seq.Read(6) // 7
//
//	// Remove the segment again. Its logical range stays reserved.
//	err = seq.RemoveSegment(sequence.ByHandle(h))
//	_, err = seq.Read(6) // errs.ErrVacantSlot
//
// # Slot States
//
// Value slots are created by New and never change kind. Segment slots move
// between SegmentRef and Empty through RemoveSegment and ReplaceSlot.
// A removed segment's logical length is not reclaimed: reads inside the
// former range fail with errs.ErrVacantSlot until the slot is replaced.
//
// # Replace Policies
//
// ReplaceSlot fills an Empty slot with a new segment. How the prefix index
// absorbs the new length is chosen with WithReplacePolicy:
//
//   - ReplaceAdditive (default): the new length is added after the slot and
//     the old reserved length is kept, so the total grows by len(values).
//     Logical indexes between the end of the new segment and the end of the
//     reserved range read as errs.ErrDeadSpace, and elements past the reserved
//     range are unreachable until Reindex. Replacing the last slot does not
//     change the total, because nothing follows it.
//   - ReplaceReuse: the slot's reserved length becomes len(values).
//
// Reindex rebuilds the prefix index from the live contents and drops every
// dead range.
//
// # Errors
//
// Out-of-range indexes, wrong slot states and unknown handles are reported as
// errors wrapping the sentinels in package errs; no operation panics on user
// input. errs.ErrInvariant signals tag or ownership desynchronization.
//
// # Concurrency
//
// A Sequence is NOT thread-safe. Callers sharing one across goroutines must
// guard it with their own lock. Slices returned by Segment and Flatten are
// copies and stay valid across later mutations.
package sequence
