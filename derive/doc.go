// Package derive implements deterministic, site-specific password derivation
// and the companion strength estimate.
//
// A password is a pure function of a master secret, a domain label, a year
// label, an optional fixed length, a category set and a build-time [Tuning].
// Nothing is stored and no randomness is used: the same inputs produce the
// same password on every platform.
//
// # Derivation
//
//	g, err := derive.NewGenerator(derive.PinnedTuning())
//	if err != nil {
//	    return err
//	}
//	res := g.Derive(derive.Request{
//	    Secret:     secret,
//	    Domain:     []byte("example.com"),
//	    Year:       []byte("2024"),
//	    Categories: derive.AllCategories,
//	})
//	defer res.Wipe()
//
// The output alphabet concatenates the selected categories in the order
// lower, digit, symbol, upper ([BuildAlphabet]). The length is the fixed
// length when given, otherwise 12 plus one symbol per five years after 2000,
// capped at 256 ([OutputLength]). The year label is read like C's atoi
// ([ParseYear]).
//
// Derivation is best effort with respect to categories: when the iteration
// ceiling is reached before every requested category appears, the password
// is still returned and [Result.Covered] is false.
//
// # Strength
//
// [Strength] combines the Shannon entropy of the password, its length, the
// configured alphabet size and a year-based divisor into a unitless score
// where 1.0 is "overkill". [DivisorPolicy] selects between a signed floor
// and the unsigned wraparound of older builds for years before 1940.
//
// # Memory
//
// Accumulators and the alphabet buffer are wiped before Derive returns. The
// caller owns the returned password and wipes it with [Result.Wipe].
// A custom [Allocator] can observe every released buffer.
package derive
