package common

import (
	"crypto/rand"
	"encoding/hex"
)

// WipeByteArray overwrites b with zeros. Used to drop passwords read from
// the terminal once they have been sent.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// MakeRandHexString returns size random bytes, hex encoded (so the string
// is twice as long as size).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
