package hash

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Checksum([]byte(tt.data)))
			assert.Equal(t, tt.sum, FingerprintString(tt.data))
		})
	}
}

func TestFingerprint(t *testing.T) {
	require.Equal(t, Checksum(nil), Fingerprint(nil))

	words := []uint64{1, 0xFFFFFFFFFFFFFFFF, 420, 67}
	buf := make([]byte, 0, len(words)*8)
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	require.Equal(t, Checksum(buf), Fingerprint(words))

	require.NotEqual(t, Fingerprint([]uint64{1, 2}), Fingerprint([]uint64{2, 1}))
}

func BenchmarkFingerprint(b *testing.B) {
	words := make([]uint64, 4096)
	for i := range words {
		words[i] = uint64(i) //nolint:gosec // test data
	}

	for b.Loop() {
		Fingerprint(words)
	}
}
