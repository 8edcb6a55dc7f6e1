// Package format defines the small enumerations shared across the MDX/MDD
// decoder: the archive kind, the header's declared encryption mode and text
// encoding, and the per-block compression kind.
package format

type (
	// Kind distinguishes an MDX (textual entries) file from an MDD
	// (binary resources) file. It is derived from the input file's
	// extension, not from anything in the header.
	Kind uint8

	// EncryptionMode is the header's declared `Encrypted` attribute.
	EncryptionMode uint8

	// TextEncoding is the header's declared `Encoding` attribute, reduced
	// to the two encodings this decoder understands.
	TextEncoding uint8

	// CompressionKind is the first byte of every block header in the
	// keyword-index, keyword-block, and record-block regions.
	CompressionKind uint8
)

const (
	KindEntry    Kind = iota + 1 // KindEntry is an MDX file: headword -> text/HTML.
	KindResource                 // KindResource is an MDD file: filename -> bytes.
)

const (
	EncryptionNone         EncryptionMode = 0 // EncryptionNone: no encryption anywhere in the file.
	EncryptionRecordBody   EncryptionMode = 1 // EncryptionRecordBody: record bodies are user-key encrypted. Unsupported (spec Non-goals).
	EncryptionKeywordIndex EncryptionMode = 2 // EncryptionKeywordIndex: the keyword-index blocks are encrypted.
)

const (
	TextEncodingUTF16LE TextEncoding = iota + 1
	TextEncodingUTF8
)

const (
	CompressionRaw  CompressionKind = 0 // CompressionRaw: block body is stored verbatim after the 8-byte header.
	CompressionLZO  CompressionKind = 1 // CompressionLZO: block body is LZO1X-compressed.
	CompressionZlib CompressionKind = 2 // CompressionZlib: block body is zlib-compressed.
)

func (k Kind) String() string {
	switch k {
	case KindEntry:
		return "Entry"
	case KindResource:
		return "Resource"
	default:
		return "Unknown"
	}
}

func (m EncryptionMode) String() string {
	switch m {
	case EncryptionNone:
		return "None"
	case EncryptionRecordBody:
		return "RecordBody"
	case EncryptionKeywordIndex:
		return "KeywordIndex"
	default:
		return "Unknown"
	}
}

// Encrypted reports whether the keyword-index blocks are encrypted, i.e.
// whether bit 0x02 of the mode is set.
func (m EncryptionMode) Encrypted() bool {
	return m&EncryptionKeywordIndex != 0
}

func (e TextEncoding) String() string {
	switch e {
	case TextEncodingUTF16LE:
		return "UTF-16LE"
	case TextEncodingUTF8:
		return "UTF-8"
	default:
		return "Unknown"
	}
}

func (c CompressionKind) String() string {
	switch c {
	case CompressionRaw:
		return "Raw"
	case CompressionLZO:
		return "LZO"
	case CompressionZlib:
		return "Zlib"
	default:
		return "Unknown"
	}
}
