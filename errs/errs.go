// Package errs collects the sentinel errors surfaced by the MDX/MDD decoder
// and its collaborators. Call sites wrap these with fmt.Errorf("...: %w", ...)
// to add context; callers of the package compare with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidPath is returned when an MDX/MDD input file is missing or
	// its extension is not mdx or mdd. An extension pair the driver does
	// not recognise is reported as ErrInvalidTransform instead.
	ErrInvalidPath = errors.New("mdict: invalid input path")

	// ErrTruncatedInput is returned when a read ran past the end of the
	// file or buffer.
	ErrTruncatedInput = errors.New("mdict: truncated input")

	// ErrIoError is returned when the underlying file handle fails for a
	// reason other than truncation (e.g. a closed handle).
	ErrIoError = errors.New("mdict: io error")

	// ErrMalformedHeader is returned when the XML header cannot be
	// parsed, or is missing GeneratedByEngineVersion, or the
	// GeneratedByEngineVersion/Encrypted attributes don't parse as
	// numbers. A missing Encrypted attribute means no encryption.
	ErrMalformedHeader = errors.New("mdict: malformed header")

	// ErrUnsupportedEncryption is returned when the header declares an
	// Encrypted mode other than 0 or 2.
	ErrUnsupportedEncryption = errors.New("mdict: unsupported encryption mode")

	// ErrUnknownCompression is returned when a block header's
	// compress_kind byte is outside {0, 1, 2}.
	ErrUnknownCompression = errors.New("mdict: unknown block compression kind")

	// ErrCorruptBlock is returned when a block fails to decompress, or a
	// decrypted/decompressed buffer violates its expected length.
	ErrCorruptBlock = errors.New("mdict: corrupt block")

	// ErrCorruptIndex is returned when keyword-index or record-index
	// bookkeeping (block counts, cumulative sizes) is inconsistent with
	// its summary.
	ErrCorruptIndex = errors.New("mdict: corrupt index")

	// ErrOutOfRange is returned when a keyword's record offset falls
	// outside every record-index block.
	ErrOutOfRange = errors.New("mdict: offset out of record index range")

	// ErrDecodeError is returned when a headword or entry text fails to
	// decode as UTF-16LE or UTF-8.
	ErrDecodeError = errors.New("mdict: text decode error")

	// ErrInvalidTransform is returned by the driver when the input/output
	// extension pair does not match any entry in the conversion table.
	ErrInvalidTransform = errors.New("mdict: invalid transform for extension pair")
)
