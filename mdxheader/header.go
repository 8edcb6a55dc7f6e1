// Package mdxheader parses the MDX/MDD file header: a length-prefixed
// UTF-16LE XML document describing the dictionary's version, encryption
// mode, and text encoding.
package mdxheader

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"unicode/utf16"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/reader"
	"github.com/belugareader/mdict/width"
)

// Header is the parsed, immutable result of reading an MDX/MDD header.
type Header struct {
	Width     width.Width
	Encrypted format.EncryptionMode
	Encoding  format.TextEncoding

	// EncodingWarning is set when the header's Encoding attribute was
	// neither "UTF-16" nor "UTF-8"; the decoder falls back to UTF-8 and
	// records why.
	EncodingWarning string

	// Attrs is the full flat attribute bag from the header element, kept
	// for callers that need fields this decoder doesn't interpret (e.g.
	// Title, Description).
	Attrs map[string]string
}

// Parse reads the header from r: a u32_be length, that many bytes of
// UTF-16LE XML, then a 4-byte checksum the decoder ignores.
func Parse(r *reader.Reader) (Header, error) {
	n, err := r.ReadUint32BE()
	if err != nil {
		return Header{}, err
	}

	raw, err := r.Read(int(n))
	if err != nil {
		return Header{}, err
	}

	if err := r.Skip(4); err != nil {
		return Header{}, err
	}

	xmlText, err := decodeUTF16LE(raw)
	if err != nil {
		return Header{}, fmt.Errorf("%w: header xml: %v", errs.ErrMalformedHeader, err)
	}

	attrs, err := flatAttrs(xmlText)
	if err != nil {
		return Header{}, err
	}

	return fromAttrs(attrs)
}

func decodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("odd-length utf16 header (%d bytes)", len(b))
	}

	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}

	return string(utf16.Decode(units)), nil
}

// flatAttrs returns the attribute bag of the first element named
// "Dictionary" or "Library_Data".
func flatAttrs(xmlText string) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader([]byte(xmlText)))

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrMalformedHeader, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "Dictionary" && start.Name.Local != "Library_Data" {
			continue
		}

		attrs := make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			attrs[a.Name.Local] = a.Value
		}

		return attrs, nil
	}
}

func fromAttrs(attrs map[string]string) (Header, error) {
	h := Header{Attrs: attrs}

	versionStr, ok := attrs["GeneratedByEngineVersion"]
	if !ok {
		return Header{}, fmt.Errorf("%w: missing GeneratedByEngineVersion", errs.ErrMalformedHeader)
	}
	version, err := strconv.ParseFloat(versionStr, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: GeneratedByEngineVersion %q: %v", errs.ErrMalformedHeader, versionStr, err)
	}
	h.Width = width.FromEngineVersion(version)

	encStr, hasEnc := attrs["Encrypted"]
	switch {
	case !hasEnc || encStr == "" || encStr == "no":
		h.Encrypted = format.EncryptionNone
	default:
		encVal, err := strconv.Atoi(encStr)
		if err != nil {
			return Header{}, fmt.Errorf("%w: Encrypted %q: %v", errs.ErrMalformedHeader, encStr, err)
		}
		h.Encrypted = format.EncryptionMode(encVal)
	}
	if h.Encrypted != format.EncryptionNone && h.Encrypted != format.EncryptionKeywordIndex {
		return Header{}, fmt.Errorf("%w: mode %d", errs.ErrUnsupportedEncryption, h.Encrypted)
	}

	switch attrs["Encoding"] {
	case "", "UTF-16":
		h.Encoding = format.TextEncodingUTF16LE
	case "UTF-8":
		h.Encoding = format.TextEncodingUTF8
	default:
		h.Encoding = format.TextEncodingUTF8
		h.EncodingWarning = fmt.Sprintf("unrecognized Encoding %q, defaulting to UTF-8", attrs["Encoding"])
	}

	return h, nil
}
