package derive

import (
	"github.com/opd-ai/detpass/crypto"
	"github.com/opd-ai/detpass/limits"
)

// Alphabet is a fixed-capacity output alphabet. Its storage never grows past
// limits.AlphabetCapacity regardless of the selected categories.
type Alphabet struct {
	buf [limits.AlphabetCapacity]byte
	n   int
}

// BuildAlphabet resets dst and fills it with the alphabets of the selected
// categories in the order Lower, Digit, Symbol, Upper. Writes beyond the
// alphabet capacity are dropped. An empty set yields an empty alphabet.
func BuildAlphabet(c Categories, dst *Alphabet) {
	dst.Wipe()
	for _, cat := range alphabetOrder {
		if c.Has(cat) {
			dst.n += copy(dst.buf[dst.n:], cat.Symbols())
		}
	}
}

// NewAlphabet returns a freshly built alphabet for c.
func NewAlphabet(c Categories) *Alphabet {
	a := &Alphabet{}
	BuildAlphabet(c, a)
	return a
}

// Len returns the number of symbols in the alphabet.
func (a *Alphabet) Len() int {
	return a.n
}

// Bytes returns a view of the alphabet's symbols. The view aliases internal
// storage and is zeroed by Wipe.
func (a *Alphabet) Bytes() []byte {
	return a.buf[:a.n]
}

// Symbol maps an accumulator value onto the alphabet. An empty alphabet
// maps every value to 0.
func (a *Alphabet) Symbol(v uint16) byte {
	if a.n == 0 {
		return 0
	}
	return a.buf[int(v)%a.n]
}

// Wipe zeroes the whole backing buffer and empties the alphabet.
func (a *Alphabet) Wipe() {
	crypto.ZeroBytes(a.buf[:])
	a.n = 0
}

// AlphabetSize returns the combined alphabet length of the selected
// categories without building the alphabet.
func AlphabetSize(c Categories) int {
	size := 0
	for _, cat := range alphabetOrder {
		if c.Has(cat) {
			size += len(cat.Symbols())
		}
	}
	return size
}
