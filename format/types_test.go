package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlotKind(t *testing.T) {
	require.Equal(t, "Empty", SlotEmpty.String())
	require.Equal(t, "SegmentRef", SlotSegment.String())
	require.Equal(t, "Value", SlotValue.String())
	require.Equal(t, "Unknown", SlotKind(3).String())

	require.True(t, SlotValue.Valid())
	require.False(t, SlotKind(3).Valid())
}

func TestElementKind(t *testing.T) {
	tests := []struct {
		kind    ElementKind
		name    string
		signed  bool
		narrow  bool
		integer bool
	}{
		{KindInt32, "Int32", true, true, true},
		{KindUint32, "Uint32", false, true, true},
		{KindInt64, "Int64", true, false, true},
		{KindUint64, "Uint64", false, false, true},
		{KindAny, "Any", false, false, false},
		{ElementKind(0), "Unknown", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.name, tt.kind.String())
			require.Equal(t, tt.signed, tt.kind.Signed())
			require.Equal(t, tt.narrow, tt.kind.Narrow())
			require.Equal(t, tt.integer, tt.kind.Integer())
		})
	}
}

func TestEncodingAndCompressionNames(t *testing.T) {
	require.Equal(t, "Raw", TypeRaw.String())
	require.Equal(t, "Msgpack", TypeMsgpack.String())
	require.Equal(t, "Unknown", EncodingType(9).String())

	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "S2", CompressionS2.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(9).String())
}
