package derive

import "bytes"

// Satisfied reports whether pw contains at least one symbol of every
// category in c. An empty set is trivially satisfied.
func Satisfied(pw []byte, c Categories) bool {
	return Missing(pw, c).Empty()
}

// Missing returns the requested categories that have no symbol in pw.
func Missing(pw []byte, c Categories) Categories {
	missing := NoCategories
	for _, cat := range alphabetOrder {
		if c.Has(cat) && !bytes.ContainsAny(pw, cat.Symbols()) {
			missing |= cat
		}
	}
	return missing
}
