package keycrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecryptInvertsEncryption(t *testing.T) {
	// Only a decrypt transform is exported, but since the keystream depends
	// solely on position and the running ciphertext byte, a matching
	// "encrypt" can be derived in the test (encryptForTest); Decrypt must
	// recover the original plaintext from its output.
	k := DeriveKey([4]byte{0x01, 0x02, 0x03, 0x04})

	plain := []byte("the quick brown fox jumps over the lazy dog")
	cipher := encryptForTest(plain, k)

	got := make([]byte, len(cipher))
	copy(got, cipher)
	Decrypt(got, k)

	require.Equal(t, plain, got)
}

func TestDecryptDifferentKeysDiffer(t *testing.T) {
	buf1 := []byte{0x10, 0x20, 0x30, 0x40}
	buf2 := make([]byte, len(buf1))
	copy(buf2, buf1)

	k1 := DeriveKey([4]byte{0xAA, 0xBB, 0xCC, 0xDD})
	k2 := DeriveKey([4]byte{0x11, 0x22, 0x33, 0x44})

	Decrypt(buf1, k1)
	Decrypt(buf2, k2)

	require.NotEqual(t, buf1, buf2)
}

// encryptForTest produces ciphertext that Decrypt will invert. Since
// Decrypt computes p_i = nibbleswap(c_i) ^ prev ^ i ^ k[i], and prev is
// always the previous ciphertext byte (known sequentially while encoding),
// solving for c_i gives c_i = nibbleswap(p_i ^ prev ^ i ^ k[i]).
func encryptForTest(plain []byte, k [16]byte) []byte {
	out := make([]byte, len(plain))
	var prev byte = 0x36

	for i, b := range plain {
		temp := b ^ prev ^ byte(i&0xFF) ^ k[i%16]
		c := (temp >> 4) | (temp << 4)
		out[i] = c
		prev = c
	}

	return out
}
