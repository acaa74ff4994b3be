package derive

import "strings"

// Categories is a set of symbol categories. The numeric value of the set is
// part of the mixing loop's iteration budget, so the bit assignment below is
// fixed.
type Categories uint8

const (
	// Lower selects lowercase letters.
	Lower Categories = 1 << iota
	// Upper selects uppercase letters.
	Upper
	// Digit selects decimal digits.
	Digit
	// Symbol selects punctuation.
	Symbol

	// NoCategories is the empty set. Deriving with it yields an empty password.
	NoCategories Categories = 0
	// AllCategories selects every category.
	AllCategories = Lower | Upper | Digit | Symbol
)

// Category alphabets. The letter orderings are deliberately not
// alphabetical; they are part of the output mapping and must never change.
const (
	LowerSymbols  = "azertyuiopqsdfghjklmwxcvbn"
	UpperSymbols  = "FGHJKLMWXCVBNAZERTYUIOPQSD"
	DigitSymbols  = "0123456789"
	SymbolSymbols = "()[]-_{}=+!:/;.,?"
)

// alphabetOrder is the concatenation order of the output alphabet. It is
// independent of the flag bit numbering.
var alphabetOrder = [...]Categories{Lower, Digit, Symbol, Upper}

// Mask returns the set's bitmask value (0-15), ignoring unknown bits.
func (c Categories) Mask() int {
	return int(c & AllCategories)
}

// Has reports whether every category in x is in c.
func (c Categories) Has(x Categories) bool {
	x &= AllCategories
	return x != 0 && c&x == x
}

// Empty reports whether no known category is selected.
func (c Categories) Empty() bool {
	return c.Mask() == 0
}

// Symbols returns the alphabet of a single category, or "" when c is not
// exactly one category.
func (c Categories) Symbols() string {
	switch c {
	case Lower:
		return LowerSymbols
	case Upper:
		return UpperSymbols
	case Digit:
		return DigitSymbols
	case Symbol:
		return SymbolSymbols
	default:
		return ""
	}
}

// String lists the selected categories in alphabet order, e.g. "lower|digit".
func (c Categories) String() string {
	if c.Empty() {
		return "none"
	}

	names := make([]string, 0, len(alphabetOrder))
	for _, cat := range alphabetOrder {
		if c.Has(cat) {
			names = append(names, categoryName(cat))
		}
	}
	return strings.Join(names, "|")
}

func categoryName(c Categories) string {
	switch c {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Digit:
		return "digit"
	case Symbol:
		return "symbol"
	default:
		return "unknown"
	}
}
