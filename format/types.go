package format

type (
	CompressionType uint8
	Kind            uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Kind tags identify the runtime shape of a polymorphic table entry on the wire.
const (
	KindBoolean Kind = 0x1 // KindBoolean represents a bool entry.
	KindNumber  Kind = 0x2 // KindNumber represents a float64 entry.
	KindString  Kind = 0x3 // KindString represents a string entry.
	KindArray   Kind = 0x4 // KindArray represents a typed array-like entry.
	KindMap     Kind = 0x5 // KindMap represents a typed key-value entry.
	KindTable   Kind = 0x6 // KindTable represents a nested dynamic container.

	// KindKeyed is OR-ed into a tag byte when the entry carries a key.
	KindKeyed Kind = 0x80
)

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

func (k Kind) String() string {
	switch k &^ KindKeyed {
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindMap:
		return "Map"
	case KindTable:
		return "Table"
	default:
		return "Unknown"
	}
}

// Valid reports whether k, ignoring the keyed bit, names a known kind.
func (k Kind) Valid() bool {
	base := k &^ KindKeyed
	return base >= KindBoolean && base <= KindTable
}

// Keyed reports whether the keyed bit is set.
func (k Kind) Keyed() bool {
	return k&KindKeyed != 0
}
