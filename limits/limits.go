// Package limits provides centralized numeric bounds for password derivation.
// This ensures consistent validation across the core and its front ends.
package limits

import (
	"errors"
	"fmt"
)

const (
	// MinPasswordLength is the shortest year-based output length
	MinPasswordLength = 12

	// MaxPasswordLength is the longest year-based output length
	MaxPasswordLength = 256

	// BaseYear is the year from which the output length starts growing
	BaseYear = 2000

	// YearsPerExtraSymbol is how many years add one symbol to the output length
	YearsPerExtraSymbol = 5

	// AlphabetCapacity is the maximum number of symbols in an output alphabet
	// (one per byte value)
	AlphabetCapacity = 256

	// IterationCeiling bounds the mixing loop when it extends itself to reach
	// category coverage
	IterationCeiling = 65536

	// MinFixedLength and MaxFixedLength bound an explicit length accepted
	// from a user-facing surface. The core does not clamp fixed lengths.
	MinFixedLength = 1
	MaxFixedLength = 256

	// MaxLabelLength caps the secret, domain and year labels accepted from a
	// user-facing surface, keeping the iteration budget bounded
	MaxLabelLength = 4096
)

var (
	// ErrLengthOutOfRange indicates a fixed length outside the accepted range
	ErrLengthOutOfRange = errors.New("length out of range")

	// ErrLabelTooLarge indicates an input label exceeds MaxLabelLength
	ErrLabelTooLarge = errors.New("label too large")
)

// ValidateFixedLength validates a user-supplied fixed output length.
// Zero means "not fixed" and is accepted.
func ValidateFixedLength(n int) error {
	if n == 0 {
		return nil
	}
	if n < MinFixedLength || n > MaxFixedLength {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrLengthOutOfRange, n, MinFixedLength, MaxFixedLength)
	}
	return nil
}

// ValidateLabel validates the size of an input label. Empty labels are valid.
// The name is used for error context only; the label content is never
// included in the error.
func ValidateLabel(name string, label []byte) error {
	if len(label) > MaxLabelLength {
		return fmt.Errorf("%w: %s size %d exceeds limit %d", ErrLabelTooLarge, name, len(label), MaxLabelLength)
	}
	return nil
}
