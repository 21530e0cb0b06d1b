package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/segseq/compress"
	"github.com/arloliu/segseq/endian"
	"github.com/arloliu/segseq/errs"
	"github.com/arloliu/segseq/internal/hash"
	"github.com/arloliu/segseq/internal/pool"
	"github.com/arloliu/segseq/primitive"
	"github.com/arloliu/segseq/sequence"
)

// Info describes a snapshot without decoding its payload.
type Info struct {
	Header Header
	Stats  compress.CompressionStats
}

// EncodeStore encodes the flattened view of s as a raw-word snapshot.
//
// Parameters:
//   - s: Store to encode; it is not modified
//   - opts: Encoder options (WithCompression, WithBigEndian, WithLogger)
//
// Returns:
//   - []byte: The snapshot blob, owned by the caller
//   - error: ErrClosed, an option error, or a compression error
func EncodeStore(s *primitive.Store, opts ...Option) ([]byte, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	words, err := s.Flatten()
	if err != nil {
		return nil, err
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	buf.Grow(len(words) * endian.WordSize)
	buf.B = endian.AppendWords(cfg.engine, buf.B, words)

	flag := newStoreFlag(s.Kind(), cfg.compression)

	return seal(cfg, flag, len(words), buf.Bytes())
}

// DecodeStore rebuilds a Store from a raw-word snapshot.
//
// The store holds one Value slot per encoded element.
//
// Parameters:
//   - data: Snapshot produced by EncodeStore
//   - opts: Options for the rebuilt store
//
// Returns:
//   - *primitive.Store: The rebuilt store
//   - error: Header, checksum or payload errors, or a store construction error
func DecodeStore(data []byte, opts ...sequence.Option) (*primitive.Store, error) {
	h, payload, err := open(data, MagicStoreV1)
	if err != nil {
		return nil, err
	}

	count, err := checkedCount(h, uint64(len(payload))/endian.WordSize)
	if err != nil {
		return nil, err
	}

	words, release := pool.GetWordSlice(count)
	defer release()

	if err := endian.DecodeWords(h.Flag.GetEndianEngine(), words, payload); err != nil {
		return nil, err
	}

	s, err := primitive.FromWords(h.Flag.Kind, words, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	s.Logger().LogSnapshot(context.Background(), "decoded", count, len(payload), len(data))

	return s, nil
}

// EncodeSequence encodes the flattened view of s as a MessagePack snapshot.
//
// Elements must be encodable by msgpack. Map keys are sorted, so equal views
// produce equal blobs.
//
// Parameters:
//   - s: Sequence to encode; it is not modified
//   - opts: Encoder options (WithCompression, WithBigEndian, WithLogger)
//
// Returns:
//   - []byte: The snapshot blob, owned by the caller
//   - error: ErrClosed, an option error, a msgpack error, or a compression error
func EncodeSequence[T any](s *sequence.Sequence[T], opts ...Option) ([]byte, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	values, err := s.Flatten()
	if err != nil {
		return nil, err
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	enc := msgpack.GetEncoder()
	enc.Reset(buf)
	enc.SetSortMapKeys(true)
	err = enc.Encode(values)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", values, err)
	}

	return seal(cfg, newSequenceFlag(cfg.compression), len(values), buf.Bytes())
}

// DecodeSequence rebuilds a Sequence from a MessagePack snapshot.
//
// The sequence holds one Value slot per encoded element.
//
// Parameters:
//   - data: Snapshot produced by EncodeSequence
//   - opts: Options for the rebuilt sequence
//
// Returns:
//   - *sequence.Sequence[T]: The rebuilt sequence
//   - error: Header, checksum or payload errors, or a sequence construction error
func DecodeSequence[T any](data []byte, opts ...sequence.Option) (*sequence.Sequence[T], error) {
	h, payload, err := open(data, MagicSequenceV1)
	if err != nil {
		return nil, err
	}

	var values []T
	var r bytes.Reader
	r.Reset(payload)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	err = dec.Decode(&values)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode msgpack into %T: %w", errs.ErrInvalidPayload, values, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidPayload, r.Len())
	}

	count, err := checkedCount(h, uint64(len(values)))
	if err != nil {
		return nil, err
	}

	s, err := sequence.New(values, opts...)
	if err != nil {
		return nil, err
	}
	s.Logger().LogSnapshot(context.Background(), "decoded", count, len(payload), len(data))

	return s, nil
}

// Inspect parses the snapshot header and reports its compression statistics.
// The payload is neither decompressed nor verified.
func Inspect(data []byte) (Info, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Header: h,
		Stats: compress.CompressionStats{
			Algorithm:      h.Flag.Compression,
			OriginalSize:   int64(h.PayloadLength), //nolint:gosec // bounded by the encoder
			CompressedSize: int64(len(data) - HeaderSize),
		},
	}, nil
}

// seal compresses payload and prepends the header.
func seal(cfg *Config, flag Flag, count int, payload []byte) ([]byte, error) {
	if endian.IsBigEndian(cfg.engine) {
		flag.WithBigEndian()
	}

	codec, err := compress.GetCodec(flag.Compression)
	if err != nil {
		return nil, err
	}
	packed, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to compress snapshot payload: %w", err)
	}

	h := Header{
		Flag:          flag,
		Count:         uint64(count),        //nolint:gosec // lengths are non-negative
		PayloadLength: uint64(len(payload)), //nolint:gosec // lengths are non-negative
		Checksum:      hash.Checksum(payload),
	}

	out := make([]byte, 0, HeaderSize+len(packed))
	out = h.AppendTo(out)
	out = append(out, packed...)

	cfg.logger.LogSnapshot(context.Background(), "encoded", count, len(payload), len(out))

	return out, nil
}

// open validates the header against magic, then decompresses and verifies the payload.
func open(data []byte, magic uint16) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	if got := h.Flag.GetMagicNumber(); got != magic {
		return Header{}, nil, fmt.Errorf("%w: got %#04x, want %#04x", errs.ErrInvalidMagicNumber, got, magic)
	}

	codec, err := compress.GetCodec(h.Flag.Compression)
	if err != nil {
		return Header{}, nil, err
	}
	payload, err := codec.Decompress(data[HeaderSize:])
	if err != nil {
		return Header{}, nil, fmt.Errorf("%w: %w", errs.ErrInvalidPayload, err)
	}
	if uint64(len(payload)) != h.PayloadLength {
		return Header{}, nil, fmt.Errorf("%w: payload is %d bytes, header says %d", errs.ErrInvalidPayload, len(payload), h.PayloadLength)
	}
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return Header{}, nil, fmt.Errorf("%w: got %#016x, want %#016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	return h, payload, nil
}

// checkedCount verifies the header element count against the decoded one.
func checkedCount(h Header, decoded uint64) (int, error) {
	if h.Count != decoded {
		return 0, fmt.Errorf("%w: header counts %d elements, payload holds %d", errs.ErrInvalidPayload, h.Count, decoded)
	}

	return int(decoded), nil //nolint:gosec // bounded by the payload length
}
