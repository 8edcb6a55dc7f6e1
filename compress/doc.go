// Package compress implements the MDX/MDD block codec.
//
// Every compressed region in an MDX/MDD file -- the keyword-index body,
// each keyword block, each record block -- is wrapped in the same 8-byte
// header. DecodeBlock strips that header, applies the keyword-index
// stream cipher when the header's encryption mode requires it, then
// dispatches to zlib or LZO1X decompression based on the header's
// compression-kind byte.
//
// Compression is one-directional in this package: the format is read-only
// here, so only decoders are implemented.
package compress
