package crypto

import (
	"crypto/subtle"
	"errors"
	"runtime"
)

// SecureWipe attempts to securely erase the contents of a byte slice
// containing sensitive data. It returns an error if the byte slice is nil.
func SecureWipe(data []byte) error {
	if data == nil {
		return errors.New("cannot wipe nil data")
	}

	// Overwrite the data with zeros
	// Using subtle.ConstantTimeCompare's byteXor operation to avoid
	// potential compiler optimizations that might remove the overwrite
	zeros := make([]byte, len(data))
	subtle.ConstantTimeCompare(data, zeros)
	copy(data, zeros)

	// Attempt to prevent the compiler from optimizing out the zeroing
	runtime.KeepAlive(data)
	runtime.KeepAlive(zeros)

	return nil
}

// ZeroBytes erases the contents of a byte slice containing sensitive data.
// This is a convenience function that ignores the error from SecureWipe.
func ZeroBytes(data []byte) {
	_ = SecureWipe(data)
}

// WipeUint16s erases a slice of 16-bit words, such as per-position
// accumulators folded from a secret. It returns an error if the slice is nil.
func WipeUint16s(words []uint16) error {
	if words == nil {
		return errors.New("cannot wipe nil words")
	}

	for i := range words {
		words[i] = 0
	}

	runtime.KeepAlive(words)
	return nil
}

// IsZero reports whether every byte of data is zero. It runs in time
// proportional to len(data) regardless of content.
func IsZero(data []byte) bool {
	var acc byte
	for _, b := range data {
		acc |= b
	}
	return subtle.ConstantTimeByteEq(acc, 0) == 1
}
