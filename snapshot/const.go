package snapshot

const (
	// Bit masks of the options field.
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2 and 3)
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15).
	MagicStoreV1    = 0x5E10 // MagicStoreV1 identifies a raw-word store snapshot, version 1.
	MagicSequenceV1 = 0x5E20 // MagicSequenceV1 identifies a MessagePack sequence snapshot, version 1.
)

// HeaderSize is the fixed snapshot header size in bytes.
const HeaderSize = 32
