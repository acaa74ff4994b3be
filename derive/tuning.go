package derive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/detpass/crypto"
)

// TuningVersion labels the parameter layout hashed into fingerprints.
const TuningVersion = "detpass-tuning-v1"

// ErrInvalidTuning indicates a malformed or unset tuning parameter set.
var ErrInvalidTuning = errors.New("invalid tuning")

// Channel holds the multipliers applied to one input: the byte under the
// cursor (Forward), the product of output position and cursor (Cross), and
// the mirrored byte at len-1-cursor (Reverse).
type Channel struct {
	Forward uint32
	Cross   uint32
	Reverse uint32
}

// Tuning is the fixed key schedule of the mixing loop. Changing any value
// changes every derived password. A Tuning is a plain value: build it once
// at start-up and pass it to NewGenerator. Its String and GoString methods
// print only a fingerprint.
type Tuning struct {
	Secret Channel
	Domain Channel
	Year   Channel
}

// PinnedTuning returns the parameter set compiled into this build.
func PinnedTuning() Tuning {
	return Tuning{
		Secret: Channel{Forward: 7919, Cross: 104729, Reverse: 1299709},
		Domain: Channel{Forward: 6151, Cross: 49157, Reverse: 786433},
		Year:   Channel{Forward: 3079, Cross: 24593, Reverse: 393241},
	}
}

// ParseTuning parses "f,c,r;f,c,r;f,c,r" (secret, domain, year channels) into
// a Tuning. Errors name the offending position but never echo its value.
func ParseTuning(spec string) (Tuning, error) {
	groups := strings.Split(spec, ";")
	if len(groups) != 3 {
		return Tuning{}, fmt.Errorf("%w: want 3 channels, got %d", ErrInvalidTuning, len(groups))
	}

	var t Tuning
	channels := []*Channel{&t.Secret, &t.Domain, &t.Year}
	names := []string{"secret", "domain", "year"}

	for i, group := range groups {
		fields := strings.Split(group, ",")
		if len(fields) != 3 {
			return Tuning{}, fmt.Errorf("%w: %s channel wants 3 multipliers, got %d", ErrInvalidTuning, names[i], len(fields))
		}

		values := make([]uint32, 3)
		for j, field := range fields {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return Tuning{}, fmt.Errorf("%w: %s channel multiplier %d is not a 32-bit unsigned integer", ErrInvalidTuning, names[i], j)
			}
			values[j] = uint32(v)
		}
		*channels[i] = Channel{Forward: values[0], Cross: values[1], Reverse: values[2]}
	}

	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Validate rejects a tuning where every multiplier is zero, which is what an
// unfilled parameter set looks like.
func (t Tuning) Validate() error {
	for _, w := range t.words() {
		if w != 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: all multipliers are zero", ErrInvalidTuning)
}

// Fingerprint returns a short digest identifying the parameter set.
func (t Tuning) Fingerprint() string {
	return crypto.Fingerprint(TuningVersion, t.words()...)
}

// String implements fmt.Stringer without exposing the multipliers.
func (t Tuning) String() string {
	return "Tuning(" + t.Fingerprint() + ")"
}

// GoString implements fmt.GoStringer without exposing the multipliers.
func (t Tuning) GoString() string {
	return t.String()
}

func (t Tuning) words() []uint32 {
	return []uint32{
		t.Secret.Forward, t.Secret.Cross, t.Secret.Reverse,
		t.Domain.Forward, t.Domain.Cross, t.Domain.Reverse,
		t.Year.Forward, t.Year.Cross, t.Year.Reverse,
	}
}
