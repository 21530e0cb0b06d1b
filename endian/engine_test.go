package endian

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segseq/errs"
)

func TestCheckEndianness(t *testing.T) {
	order := CheckEndianness()
	require.NotNil(t, order)

	switch runtime.GOARCH {
	case "amd64", "386", "arm64", "arm", "riscv64", "loong64", "wasm":
		require.Equal(t, binary.LittleEndian, order)
		require.True(t, IsNativeLittleEndian())
		require.False(t, IsNativeBigEndian())
	case "s390x", "mips", "mips64", "ppc64":
		require.Equal(t, binary.BigEndian, order)
		require.True(t, IsNativeBigEndian())
	}

	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
}

func TestCompareNativeEndian(t *testing.T) {
	if IsNativeLittleEndian() {
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}

func TestEngineFor(t *testing.T) {
	require.Equal(t, GetBigEndianEngine(), EngineFor(true))
	require.Equal(t, GetLittleEndianEngine(), EngineFor(false))

	require.True(t, IsBigEndian(EngineFor(true)))
	require.False(t, IsBigEndian(EngineFor(false)))
}

func TestAppendWords(t *testing.T) {
	words := []uint64{0x0102030405060708, 0xFFFFFFFFFFFFFFFF}

	t.Run("little endian", func(t *testing.T) {
		buf := AppendWords(GetLittleEndianEngine(), []byte{0xAA}, words)
		require.Len(t, buf, 1+2*WordSize)
		require.Equal(t, byte(0xAA), buf[0])
		require.Equal(t, []byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}, buf[1:9])
	})

	t.Run("big endian", func(t *testing.T) {
		buf := AppendWords(GetBigEndianEngine(), nil, words)
		require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, buf[:8])
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, AppendWords(GetLittleEndianEngine(), nil, nil))
	})
}

func TestDecodeWords(t *testing.T) {
	words := []uint64{1, 1 << 40, 0xDEADBEEF}

	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		buf := AppendWords(engine, nil, words)
		got := make([]uint64, len(words))
		require.NoError(t, DecodeWords(engine, got, buf))
		require.Equal(t, words, got)
	}

	err := DecodeWords(GetLittleEndianEngine(), make([]uint64, 1), make([]byte, 7))
	require.ErrorIs(t, err, errs.ErrInvalidPayload)

	err = DecodeWords(GetLittleEndianEngine(), make([]uint64, 1), make([]byte, 16))
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

func BenchmarkAppendWords(b *testing.B) {
	words := make([]uint64, 1024)
	for i := range words {
		words[i] = uint64(i)
	}
	engine := GetLittleEndianEngine()
	buf := make([]byte, 0, len(words)*WordSize)

	for b.Loop() {
		buf = AppendWords(engine, buf[:0], words)
	}
}
