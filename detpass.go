package detpass

import (
	"fmt"

	"github.com/opd-ai/detpass/crypto"
	"github.com/opd-ai/detpass/derive"
)

// Options contains configuration options for creating a DetPass instance.
// Options are read once by New; later changes have no effect.
type Options struct {
	// Categories selects the symbol classes of derived passwords.
	Categories derive.Categories

	// FixedLength forces the password length when positive. Zero selects
	// the year-based length.
	FixedLength int

	// Tuning is the build's mixing parameter set.
	Tuning derive.Tuning

	// DivisorPolicy controls strength scores for years before 1940.
	DivisorPolicy derive.DivisorPolicy

	// Allocator overrides the working buffer allocator. Nil uses the heap.
	Allocator derive.Allocator
}

// NewOptions creates a new default Options: every category, year-based
// length, the pinned tuning and the clamped strength divisor.
func NewOptions() *Options {
	return &Options{
		Categories:    derive.AllCategories,
		FixedLength:   0,
		Tuning:        derive.PinnedTuning(),
		DivisorPolicy: derive.DivisorClamp,
	}
}

// DetPass derives passwords with a fixed configuration. It is safe for
// concurrent use.
type DetPass struct {
	options   Options
	generator *derive.Generator
}

// New creates a new DetPass instance with the given options. Nil options
// select NewOptions.
func New(options *Options) (*DetPass, error) {
	if options == nil {
		options = NewOptions()
	}

	logger := crypto.NewPackageLogger("detpass", "New")

	var opts []derive.Option
	if options.Allocator != nil {
		opts = append(opts, derive.WithAllocator(options.Allocator))
	}

	generator, err := derive.NewGenerator(options.Tuning, opts...)
	if err != nil {
		logger.WithError(err, "TuningError", "new_generator").Error("Failed to create generator")
		return nil, fmt.Errorf("detpass: %w", err)
	}

	logger.WithField("tuning", generator.Fingerprint()).
		WithField("categories", options.Categories.String()).
		WithField("fixed_length", options.FixedLength).
		Debug("DetPass instance created")

	return &DetPass{options: *options, generator: generator}, nil
}

// Derive computes the password for a secret, domain label and year label.
// The inputs are not modified or retained. The caller must Wipe the result.
func (d *DetPass) Derive(secret, domain, year []byte) *Password {
	res := d.generator.Derive(derive.Request{
		Secret:      secret,
		Domain:      domain,
		Year:        year,
		FixedLength: d.options.FixedLength,
		Categories:  d.options.Categories,
	})

	return &Password{
		value:      res.Password,
		covered:    res.Covered,
		iterations: res.Iterations,
	}
}

// Strength scores a password for a year label under the instance's category
// set and divisor policy.
func (d *DetPass) Strength(pw *Password, year []byte) float64 {
	if pw == nil {
		return 0
	}
	return derive.Strength(pw.value, year, d.options.Categories, d.options.DivisorPolicy)
}

// Fingerprint identifies the instance's tuning without revealing it.
func (d *DetPass) Fingerprint() string {
	return d.generator.Fingerprint()
}

// Categories returns the configured category set.
func (d *DetPass) Categories() derive.Categories {
	return d.options.Categories
}

// Password is a derived password. Its String method is redacted; use Bytes
// to read the value and Wipe to erase it.
type Password struct {
	value      []byte
	covered    bool
	iterations int
}

// Bytes returns the password. The slice aliases the Password's storage and
// is zeroed by Wipe.
func (p *Password) Bytes() []byte {
	return p.value
}

// Len returns the password length.
func (p *Password) Len() int {
	return len(p.value)
}

// Covered reports whether every requested category is present. It is false
// only when the derivation hit its iteration ceiling first.
func (p *Password) Covered() bool {
	return p.covered
}

// Iterations returns the number of mixing steps used.
func (p *Password) Iterations() int {
	return p.iterations
}

// Wipe zeroes the password in place.
func (p *Password) Wipe() {
	crypto.ZeroBytes(p.value)
}

// String implements fmt.Stringer without revealing the password.
func (p *Password) String() string {
	return fmt.Sprintf("Password(len=%d)", len(p.value))
}

// GoString implements fmt.GoStringer without revealing the password.
func (p *Password) GoString() string {
	return p.String()
}
