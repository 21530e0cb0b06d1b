package segseq

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segseq/bitbuf"
	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
	"github.com/arloliu/segseq/primitive"
	"github.com/arloliu/segseq/sequence"
)

func TestNewSequence(t *testing.T) {
	seq, err := NewSequence([]string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, sequence.ReplaceAdditive, seq.Policy())

	_, err = seq.AppendValues([]string{"c", "d", "e"})
	require.NoError(t, err)

	v, err := seq.Read(3)
	require.NoError(t, err)
	require.Equal(t, "d", v)
	require.Equal(t, "[a b c d e]", seq.String())
}

func TestNewCompactSequence(t *testing.T) {
	seq, err := NewCompactSequence([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, sequence.ReplaceReuse, seq.Policy())

	h, err := seq.AppendValues([]int{4, 5, 6})
	require.NoError(t, err)
	require.NoError(t, seq.RemoveSegment(sequence.ByHandle(h)))

	_, err = seq.ReplaceSlot(3, []int{7})
	require.NoError(t, err)
	require.Equal(t, 4, seq.Len())
	require.Equal(t, "[1 2 3 7]", seq.String())

	overridden, err := NewCompactSequence([]int{1}, sequence.WithReplacePolicy(sequence.ReplaceAdditive))
	require.NoError(t, err)
	require.Equal(t, sequence.ReplaceAdditive, overridden.Policy())
}

func TestNewStores(t *testing.T) {
	s32, err := NewInt32Store([]int32{-1, 2})
	require.NoError(t, err)
	require.Equal(t, format.KindInt32, s32.Kind())
	v, err := s32.ReadInt64(0)
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)

	u32, err := NewUint32Store([]uint32{7})
	require.NoError(t, err)
	require.Equal(t, format.KindUint32, u32.Kind())

	s64, err := NewInt64Store([]int64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, 3, s64.Len())

	u64, err := NewUint64Store(nil)
	require.NoError(t, err)
	require.Equal(t, 0, u64.Len())

	empty, err := NewStore(format.KindUint64)
	require.NoError(t, err)
	require.Equal(t, 0, empty.SlotCount())

	_, err = NewStore(format.KindAny)
	require.ErrorIs(t, err, errs.ErrInvalidKind)
}

func TestNewBitBuffer(t *testing.T) {
	b := NewBitBuffer(1)
	require.Equal(t, uint64(8), b.Cap())
	require.NoError(t, b.WriteBits(0, 0b10110001, 8, false))

	f, err := b.ReadBits(0, 8, false, bitbuf.Int8)
	require.NoError(t, err)
	require.Equal(t, int64(-79), f.Int64())
}

func TestFingerprint(t *testing.T) {
	flat, err := NewInt64Store([]int64{1, 2, 3, 4})
	require.NoError(t, err)

	split, err := NewInt64Store([]int64{1, 2})
	require.NoError(t, err)
	_, err = primitive.AppendValues(split, []int64{3, 4})
	require.NoError(t, err)

	a, err := Fingerprint(flat)
	require.NoError(t, err)
	b, err := Fingerprint(split)
	require.NoError(t, err)
	require.Equal(t, a, b)

	other, err := NewInt64Store([]int64{4, 3, 2, 1})
	require.NoError(t, err)
	c, err := Fingerprint(other)
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	require.NoError(t, flat.Close())
	_, err = Fingerprint(flat)
	require.ErrorIs(t, err, errs.ErrClosed)
}

func TestKey(t *testing.T) {
	require.Equal(t, uint64(0x4fdcca5ddb678139), Key("test"))
	require.NotEqual(t, Key("cpu"), Key("mem"))
}

func TestSnapshotRestore(t *testing.T) {
	s, err := NewUint32Store([]uint32{10, 20})
	require.NoError(t, err)
	_, err = primitive.AppendValues(s, []uint32{30})
	require.NoError(t, err)

	blob, err := Snapshot(s)
	require.NoError(t, err)

	restored, err := Restore(blob)
	require.NoError(t, err)
	got, err := primitive.Values[uint32](restored)
	require.NoError(t, err)
	require.Equal(t, []uint32{10, 20, 30}, got)

	fa, err := Fingerprint(s)
	require.NoError(t, err)
	fb, err := Fingerprint(restored)
	require.NoError(t, err)
	require.Equal(t, fa, fb)
}
