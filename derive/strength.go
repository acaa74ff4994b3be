package derive

import (
	"math"
)

// OverkillStrength is the normalisation reference of the strength score:
// a score of 1.0 or more is considered excellent.
const OverkillStrength = 30.0

// DivisorPolicy selects how the year-based strength divisor treats years
// before 1940, where year/5 - 388 drops below zero.
type DivisorPolicy int

const (
	// DivisorClamp computes max(year/5 - 388, 12) in signed arithmetic.
	DivisorClamp DivisorPolicy = iota

	// DivisorWrap computes year/5 - 388 in 32-bit unsigned arithmetic before
	// applying the floor of 12, so small years wrap to a very large divisor
	// and a near-zero score. Use it to reproduce scores of older builds.
	DivisorWrap
)

// String returns the policy name.
func (p DivisorPolicy) String() string {
	switch p {
	case DivisorClamp:
		return "clamp"
	case DivisorWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

const (
	divisorOffset = 388
	divisorFloor  = 12
)

// Strength scores pw for the given year label and category set. The score is
// unitless and unbounded; presentation layers bucket and clamp it.
func Strength(pw []byte, year []byte, c Categories, policy DivisorPolicy) float64 {
	return StrengthAt(pw, ParseYear(year), c, policy)
}

// StrengthAt scores pw for an already parsed year:
//
//	entropy × (len(pw) / divisor(year)) × log2(alphabet size) / OverkillStrength
//
// The alphabet size is that of the configured categories, not of the symbols
// present in pw. An empty password or an empty category set scores 0.
func StrengthAt(pw []byte, year int, c Categories, policy DivisorPolicy) float64 {
	alphabetSize := AlphabetSize(c)
	if len(pw) == 0 || alphabetSize == 0 {
		return 0.0
	}

	entropy := Entropy(pw)
	divisor := YearDivisor(year, policy)

	return entropy * (float64(len(pw)) / divisor) * math.Log2(float64(alphabetSize)) / OverkillStrength
}

// Entropy returns the Shannon entropy, in bits per symbol, of the byte
// frequency distribution of pw.
func Entropy(pw []byte) float64 {
	if len(pw) == 0 {
		return 0.0
	}

	var counts [256]int
	for _, b := range pw {
		counts[b]++
	}

	entropy := 0.0
	total := float64(len(pw))
	for _, n := range counts {
		if n == 0 {
			continue
		}
		p := float64(n) / total
		entropy -= p * math.Log2(p)
	}

	// The table mirrors the password's symbol distribution.
	clear(counts[:])
	return entropy
}

// YearDivisor returns the strength divisor for year under policy. Later
// years yield a larger divisor and so a lower score.
func YearDivisor(year int, policy DivisorPolicy) float64 {
	if policy == DivisorWrap {
		d := uint32(int32(year))/5 - divisorOffset
		return float64(max(uint64(d), divisorFloor))
	}

	return float64(max(year/5-divisorOffset, divisorFloor))
}
