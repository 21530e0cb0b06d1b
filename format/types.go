package format

type (
	SlotKind        uint8
	ElementKind     uint8
	EncodingType    uint8
	CompressionType uint8
)

const (
	SlotEmpty   SlotKind = 0x0 // SlotEmpty marks a slot whose segment was removed.
	SlotSegment SlotKind = 0x1 // SlotSegment marks a slot referencing an owned segment.
	SlotValue   SlotKind = 0x2 // SlotValue marks a slot holding one inline value.

	KindInt32  ElementKind = 0x1 // KindInt32 stores int32 sources sign-extended to 64 bits.
	KindUint32 ElementKind = 0x2 // KindUint32 stores uint32 sources zero-extended to 64 bits.
	KindInt64  ElementKind = 0x3 // KindInt64 stores int64 values as-is.
	KindUint64 ElementKind = 0x4 // KindUint64 stores uint64 values as-is.
	KindAny    ElementKind = 0xF // KindAny marks a generic sequence payload.

	TypeRaw     EncodingType = 0x1 // TypeRaw represents fixed-width 64-bit words.
	TypeMsgpack EncodingType = 0x2 // TypeMsgpack represents a MessagePack array.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (k SlotKind) String() string {
	switch k {
	case SlotEmpty:
		return "Empty"
	case SlotSegment:
		return "SegmentRef"
	case SlotValue:
		return "Value"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is one of the three slot kinds.
func (k SlotKind) Valid() bool {
	return k <= SlotValue
}

func (k ElementKind) String() string {
	switch k {
	case KindInt32:
		return "Int32"
	case KindUint32:
		return "Uint32"
	case KindInt64:
		return "Int64"
	case KindUint64:
		return "Uint64"
	case KindAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// Signed reports whether the kind stores two's complement values.
func (k ElementKind) Signed() bool {
	return k == KindInt32 || k == KindInt64
}

// Narrow reports whether the kind is sourced from 32-bit values.
func (k ElementKind) Narrow() bool {
	return k == KindInt32 || k == KindUint32
}

// Integer reports whether k is one of the four integer kinds.
func (k ElementKind) Integer() bool {
	return k >= KindInt32 && k <= KindUint64
}

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeMsgpack:
		return "Msgpack"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
