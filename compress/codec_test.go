package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"Zstd": NewZstdCompressor(),
		"S2":   NewS2Compressor(),
		"LZ4":  NewLZ4Compressor(),
	}
}

// wordPayload builds a raw-word payload like the ones snapshots compress:
// n little-endian uint64 values cycling through a small range.
func wordPayload(n int) []byte {
	buf := make([]byte, 0, n*8)
	for i := range n {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(i%17)) //nolint:gosec // test data
	}

	return buf
}

func TestGetCodec(t *testing.T) {
	tests := []struct {
		name  string
		ctype format.CompressionType
		want  Codec
	}{
		{name: "none", ctype: format.CompressionNone, want: NoOpCompressor{}},
		{name: "zstd", ctype: format.CompressionZstd, want: ZstdCompressor{}},
		{name: "s2", ctype: format.CompressionS2, want: S2Compressor{}},
		{name: "lz4", ctype: format.CompressionLZ4, want: LZ4Compressor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.ctype)
			require.NoError(t, err)
			require.IsType(t, tt.want, codec)
		})
	}

	for _, ctype := range []format.CompressionType{0, 0x9} {
		_, err := GetCodec(ctype)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	}
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
	require.Zero(t, empty.SpaceSavings())
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	sizes := []int{1, 8, 100, 4096}
	for name, codec := range getAllCodecs() {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s/%d_words", name, n), func(t *testing.T) {
				payload := wordPayload(n)
				original := bytes.Clone(payload)

				packed, err := codec.Compress(payload)
				require.NoError(t, err)
				require.Equal(t, original, payload, "input must not be modified")

				restored, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, original, restored)
			})
		}
	}
}

func TestAllCodecs_CompressRepetitivePayload(t *testing.T) {
	payload := wordPayload(8192)
	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			packed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(packed), len(payload)/2)
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			restored, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, restored)

			packed, err := codec.Compress([]byte{})
			require.NoError(t, err)
			restored, err = codec.Decompress(packed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	inputs := map[string][]byte{
		"random_bytes":       {0xFF, 0xFF, 0xFF, 0xFF},
		"text_as_compressed": []byte("this is not compressed data"),
	}
	for name, codec := range getAllCodecs() {
		if name == "NoOp" {
			continue
		}
		for inputName, data := range inputs {
			t.Run(name+"/"+inputName, func(t *testing.T) {
				_, err := codec.Decompress(data)
				require.Error(t, err)
			})
		}
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	payload := wordPayload(512)
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					packed, err := codec.Compress(payload)
					if err != nil {
						errCh <- err
						return
					}
					restored, err := codec.Decompress(packed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(payload, restored) {
						errCh <- fmt.Errorf("%s: round trip mismatch", name)
					}
				}()
			}
			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestLZ4Compressor_LargeExpansionRatio(t *testing.T) {
	payload := make([]byte, 1<<20)
	codec := NewLZ4Compressor()

	packed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(packed)*4, len(payload))

	restored, err := codec.Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func BenchmarkAllCodecs_Compress(b *testing.B) {
	payload := wordPayload(4096)
	for name, codec := range getAllCodecs() {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	payload := wordPayload(4096)
	for name, codec := range getAllCodecs() {
		packed, err := codec.Compress(payload)
		require.NoError(b, err)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for b.Loop() {
				_, _ = codec.Decompress(packed)
			}
		})
	}
}
