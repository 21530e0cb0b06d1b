package sequence

import (
	"fmt"

	"github.com/arloliu/segseq/errs"
)

type selectorMode uint8

const (
	selectNone selectorMode = iota
	selectSlot
	selectHandle
)

// Selector names the segment RemoveSegment acts on, either by physical slot
// index or by segment handle. The zero Selector selects nothing.
type Selector struct {
	slot   int
	handle Handle
	mode   selectorMode
}

// BySlot selects the segment referenced by physical slot i.
func BySlot(i int) Selector {
	return Selector{slot: i, mode: selectSlot}
}

// ByHandle selects the segment registered under h.
func ByHandle(h Handle) Selector {
	return Selector{handle: h, mode: selectHandle}
}

// Slot returns the selected slot index for a BySlot selector.
func (s Selector) Slot() (int, bool) {
	return s.slot, s.mode == selectSlot
}

// Handle returns the selected handle for a ByHandle selector.
func (s Selector) Handle() (Handle, bool) {
	return s.handle, s.mode == selectHandle
}

func (s Selector) String() string {
	switch s.mode {
	case selectSlot:
		return fmt.Sprintf("slot %d", s.slot)
	case selectHandle:
		return fmt.Sprintf("handle %d", s.handle)
	default:
		return "none"
	}
}

// Validate reports ErrInvalidSelector for the zero Selector.
func (s Selector) Validate() error {
	if s.mode == selectNone {
		return errs.ErrInvalidSelector
	}

	return nil
}
