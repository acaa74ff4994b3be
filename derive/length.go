package derive

import (
	"math"

	"github.com/opd-ai/detpass/limits"
)

// OutputLength returns the password length. A positive fixed length is
// returned unchanged. Otherwise the length grows by one symbol every five
// years from 2000 and is kept within [12, 256].
func OutputLength(fixed int, year int) int {
	if fixed > 0 {
		return fixed
	}

	if year < limits.BaseYear {
		return limits.MinPasswordLength
	}

	n := limits.MinPasswordLength + (year-limits.BaseYear)/limits.YearsPerExtraSymbol
	return max(limits.MinPasswordLength, min(limits.MaxPasswordLength, n))
}

// ParseYear reads a year label the way C's atoi does: leading whitespace is
// skipped, an optional sign is accepted, and decimal digits are read up to
// the first non-digit. A label with no leading number yields 0. The result
// saturates at the 32-bit signed range.
func ParseYear(label []byte) int {
	i := 0
	for i < len(label) && isSpace(label[i]) {
		i++
	}

	negative := false
	if i < len(label) && (label[i] == '+' || label[i] == '-') {
		negative = label[i] == '-'
		i++
	}

	const bound = int64(math.MaxInt32) + 1
	var v int64
	for ; i < len(label) && label[i] >= '0' && label[i] <= '9'; i++ {
		v = v*10 + int64(label[i]-'0')
		if v > bound {
			v = bound
		}
	}

	if negative {
		v = -v
	}
	return int(max(math.MinInt32, min(math.MaxInt32, v)))
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
