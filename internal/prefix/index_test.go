package prefix

import (
	"testing"

	"github.com/arloliu/segseq/errs"
	"github.com/stretchr/testify/require"
)

func TestSequential(t *testing.T) {
	idx := Sequential(5)
	require.Equal(t, []int{1, 2, 3, 4, 5}, idx.Ends())
	require.Equal(t, 5, idx.Total())
	require.Equal(t, 5, idx.Len())

	empty := Sequential(0)
	require.Equal(t, 0, empty.Total())
	require.Equal(t, 0, empty.Len())
}

func TestIndex_Locate(t *testing.T) {
	idx := Sequential(5)
	idx.Extend(5)
	idx.Extend(5)
	require.Equal(t, []int{1, 2, 3, 4, 5, 10, 15}, idx.Ends())

	tests := []struct {
		logical    int
		wantSlot   int
		wantOffset int
	}{
		{0, 0, 0},
		{4, 4, 0},
		{5, 5, 0},
		{9, 5, 4},
		{10, 6, 0},
		{14, 6, 4},
	}
	for _, tt := range tests {
		slot, offset, err := idx.Locate(tt.logical)
		require.NoError(t, err)
		require.Equal(t, tt.wantSlot, slot, "logical %d", tt.logical)
		require.Equal(t, tt.wantOffset, offset, "logical %d", tt.logical)
	}

	_, _, err := idx.Locate(15)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	_, _, err = idx.Locate(-1)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
	_, _, err = New(0).Locate(0)
	require.ErrorIs(t, err, errs.ErrOutOfBounds)
}

func TestIndex_LocateSkipsZeroSpanSlots(t *testing.T) {
	idx := New(4)
	idx.Extend(2)
	idx.Extend(0)
	idx.Extend(0)
	idx.Extend(3)

	slot, offset, err := idx.Locate(2)
	require.NoError(t, err)
	require.Equal(t, 3, slot)
	require.Equal(t, 0, offset)
}

func TestIndex_ShiftFrom(t *testing.T) {
	t.Run("positive delta", func(t *testing.T) {
		idx := Sequential(3)
		idx.Extend(5)
		require.NoError(t, idx.ShiftFrom(1, 2))
		require.Equal(t, []int{1, 4, 5, 10}, idx.Ends())
		require.Equal(t, 3, idx.Span(1))
	})

	t.Run("past the end is a no-op", func(t *testing.T) {
		idx := Sequential(3)
		require.NoError(t, idx.ShiftFrom(3, 7))
		require.Equal(t, []int{1, 2, 3}, idx.Ends())
	})

	t.Run("negative delta", func(t *testing.T) {
		idx := New(2)
		idx.Extend(5)
		idx.Extend(5)
		require.NoError(t, idx.ShiftFrom(1, -3))
		require.Equal(t, []int{5, 7}, idx.Ends())
	})

	t.Run("negative span rejected", func(t *testing.T) {
		idx := New(2)
		idx.Extend(5)
		idx.Extend(1)
		err := idx.ShiftFrom(1, -2)
		require.ErrorIs(t, err, errs.ErrInvariant)
		require.Equal(t, []int{5, 6}, idx.Ends())
	})

	t.Run("negative slot", func(t *testing.T) {
		require.ErrorIs(t, Sequential(1).ShiftFrom(-1, 1), errs.ErrOutOfBounds)
	})
}

func TestIndex_StartEndSpan(t *testing.T) {
	idx := New(3)
	idx.Extend(3)
	idx.Extend(4)
	idx.Extend(1)

	require.Equal(t, 0, idx.Start(0))
	require.Equal(t, 3, idx.End(0))
	require.Equal(t, 3, idx.Start(1))
	require.Equal(t, 7, idx.End(1))
	require.Equal(t, 4, idx.Span(1))
	require.Equal(t, 1, idx.Span(2))
}

func TestIndex_RebuildAndReset(t *testing.T) {
	idx := Sequential(4)
	idx.Rebuild([]int{1, 0, 3, 2})
	require.Equal(t, []int{1, 1, 4, 6}, idx.Ends())
	require.Equal(t, 6, idx.Total())

	idx.Reset()
	require.Equal(t, 0, idx.Len())
	require.Equal(t, 0, idx.Total())
}

func BenchmarkIndex_Locate(b *testing.B) {
	idx := New(1 << 16)
	for range 1 << 16 {
		idx.Extend(8)
	}
	total := idx.Total()
	i := 0
	for b.Loop() {
		_, _, _ = idx.Locate(i)
		i = (i + 7919) % total
	}
}
