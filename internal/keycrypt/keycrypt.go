// Package keycrypt implements the MDX/MDD keyword-index decryption scheme:
// an 8-byte key derived from the block's Adler-32 seed, run through
// RIPEMD-128, feeding a stateful nibble-swap/XOR stream cipher.
package keycrypt

import "github.com/belugareader/mdict/internal/ripemd128"

// keySuffix is appended to the 4-byte Adler-32 seed before hashing, per the
// format's fixed key-derivation constant.
var keySuffix = [4]byte{0x95, 0x36, 0x00, 0x00}

// DeriveKey builds the 8-byte key material (the Adler-32 bytes plus the
// fixed suffix) and returns its RIPEMD-128 digest.
func DeriveKey(adlerBytes [4]byte) [16]byte {
	var material [8]byte
	copy(material[:4], adlerBytes[:])
	copy(material[4:], keySuffix[:])

	return ripemd128.Sum128(material[:])
}

// Decrypt reverses the stream cipher in place over buf, using key k.
//
// The transform is byte-serial and stateful: prev starts at 0x36 and is fed
// the ciphertext byte (the value before nibble swap/XOR) at each step, not
// the recovered plaintext byte.
func Decrypt(buf []byte, k [16]byte) {
	var prev byte = 0x36

	for i, b := range buf {
		swapped := (b >> 4) | (b << 4)
		buf[i] = swapped ^ prev ^ byte(i&0xFF) ^ k[i%16]
		prev = b
	}
}
