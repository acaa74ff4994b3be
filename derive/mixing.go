package derive

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/detpass/crypto"
	"github.com/opd-ai/detpass/limits"
)

// Request holds the inputs of one derivation. The Year label is parsed with
// ParseYear; a FixedLength of zero or less selects the year-based length.
type Request struct {
	Secret      []byte
	Domain      []byte
	Year        []byte
	FixedLength int
	Categories  Categories
}

// Result is the outcome of a derivation. Password is owned by the caller,
// who should Wipe it once done.
type Result struct {
	Password []byte

	// Iterations is the number of mixing steps performed.
	Iterations int

	// Covered reports whether Password contains a symbol from every requested
	// category. It can be false when the iteration ceiling was reached first.
	Covered bool
}

// Wipe zeroes the derived password.
func (r *Result) Wipe() {
	crypto.ZeroBytes(r.Password)
}

// Generator derives passwords with a fixed tuning. It holds no mutable state
// and is safe for concurrent use when its Allocator is.
type Generator struct {
	tuning      Tuning
	fingerprint string
	alloc       Allocator
}

// Option configures a Generator.
type Option func(*Generator)

// WithAllocator replaces the default heap allocator.
func WithAllocator(a Allocator) Option {
	return func(g *Generator) {
		if a != nil {
			g.alloc = a
		}
	}
}

// NewGenerator returns a Generator for the given tuning.
func NewGenerator(t Tuning, opts ...Option) (*Generator, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("new generator: %w", err)
	}

	g := &Generator{tuning: t, fingerprint: t.Fingerprint(), alloc: heapAllocator{}}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Tuning returns the generator's parameter set.
func (g *Generator) Tuning() Tuning {
	return g.tuning
}

// Fingerprint returns the tuning fingerprint computed when g was created.
func (g *Generator) Fingerprint() string {
	return g.fingerprint
}

// Derive computes the password for req. It is a total function: empty
// labels are skipped and an empty category set yields an empty password.
//
// Every output position owns a 16-bit accumulator. Each step folds one byte
// of every non-empty input into the accumulator of the current position and
// maps the accumulator onto the alphabet. The step budget is
// alphabet size × (len(secret) + len(domain) + len(year) + length + mask);
// when the budget is spent without covering every requested category it is
// extended by one pass over the output, up to limits.IterationCeiling.
//
// The accumulators and the alphabet are wiped before Derive returns.
func (g *Generator) Derive(req Request) Result {
	logger := crypto.NewPackageLogger("derive", "Derive")
	logger.Entry("deriving password")
	defer logger.Exit()

	if req.Categories.Empty() {
		logger.Debug("No categories requested, returning empty password")
		return Result{Password: []byte{}, Covered: true}
	}

	alphabet := g.alloc.Alphabet()
	BuildAlphabet(req.Categories, alphabet)

	length := OutputLength(req.FixedLength, ParseYear(req.Year))
	acc := g.alloc.Accumulators(length)

	defer func() {
		crypto.WipeUint16s(acc)
		alphabet.Wipe()
		g.alloc.Release(acc, alphabet)
	}()

	out := make([]byte, length)
	iterations := g.mix(req, alphabet, acc, out)
	covered := Satisfied(out, req.Categories)

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logger.WithFields(crypto.OperationFields("derive", "complete", logrus.Fields{
			"categories":    req.Categories.String(),
			"alphabet_size": alphabet.Len(),
			"output_length": length,
			"iterations":    iterations,
			"covered":       covered,
			"tuning":        g.fingerprint,
		}, crypto.RedactedFields(req.Secret, "secret"),
			crypto.RedactedFields(req.Domain, "domain"),
			crypto.RedactedFields(req.Year, "year"))).Debug("Password derived")
	}

	if !covered {
		logger.Warn("Iteration ceiling reached before every category was covered")
	}

	return Result{Password: out, Iterations: iterations, Covered: covered}
}

// mix runs the accumulator loop over out and returns the step count.
func (g *Generator) mix(req Request, alphabet *Alphabet, acc []uint16, out []byte) int {
	secret, domain, year := req.Secret, req.Domain, req.Year
	length := len(out)

	limit := alphabet.Len() * (len(secret) + len(domain) + len(year) + length + req.Categories.Mask())

	var secretPos, domainPos, yearPos, outPos int
	iteration := 0

	for iteration < limit {
		if secretPos >= len(secret) {
			secretPos = 0
		}
		if domainPos >= len(domain) {
			domainPos = 0
		}
		if yearPos >= len(year) {
			yearPos = 0
		}
		if outPos >= length {
			outPos = 0
		}

		v := acc[outPos]
		if len(secret) > 0 {
			v = fold(v, secret, secretPos, outPos, g.tuning.Secret)
		}
		if len(domain) > 0 {
			v = fold(v, domain, domainPos, outPos, g.tuning.Domain)
		}
		if len(year) > 0 {
			v = fold(v, year, yearPos, outPos, g.tuning.Year)
		}
		acc[outPos] = v

		// May be overwritten on a later pass over the same position.
		out[outPos] = alphabet.Symbol(v)

		outPos++
		secretPos++
		domainPos++
		yearPos++
		iteration++

		if iteration == limit && limit < limits.IterationCeiling && !Satisfied(out, req.Categories) {
			limit = min(limit+length, limits.IterationCeiling)
		}
	}

	return iteration
}

// fold adds one channel's contribution to an accumulator, modulo 65536.
// Input bytes are read as unsigned octets.
func fold(acc uint16, in []byte, cursor, pos int, ch Channel) uint16 {
	term := uint32(in[cursor])*ch.Forward +
		uint32(pos)*uint32(cursor)*ch.Cross +
		uint32(in[len(in)-1-cursor])*ch.Reverse
	return acc + uint16(term)
}
