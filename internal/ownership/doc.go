// Package ownership tracks which segments a container owns.
//
// Segments spliced into a container are identified by stable integer handles
// rather than addresses. The Table maps each handle to the owned segment, the
// physical slot that references it and its logical length. A container keeps
// exactly one entry per slot in the SegmentRef state.
package ownership
