// Package limits provides centralized numeric bounds and validation functions
// for deterministic password derivation.
//
// # Length Bounds
//
// Without an explicit length the output grows by one symbol every
// YearsPerExtraSymbol years from BaseYear:
//
//   - before 2005: MinPasswordLength (12)
//   - 2005-2009: 13
//   - 2010-2014: 14
//
// and so on, never exceeding MaxPasswordLength (256).
//
// # Loop Bounds
//
// IterationCeiling (65536) is the hard bound on the mixing loop's coverage
// extension. AlphabetCapacity (256) is the fixed size of the alphabet buffer.
//
// # Validation Functions
//
// Front ends validate user input before calling the core:
//
//	if err := limits.ValidateFixedLength(n); err != nil {
//	    // ErrLengthOutOfRange
//	}
//	if err := limits.ValidateLabel("domain", domain); err != nil {
//	    // ErrLabelTooLarge
//	}
//
// The core itself accepts any length and any label; these checks belong to
// the surfaces that collect input.
package limits
