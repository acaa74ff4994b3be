// Package detpass derives reproducible, site-specific passwords from a single
// master secret.
//
// The user remembers one secret. For every site, the password is recomputed
// on demand from that secret, the site's domain label and a year label. Nothing
// is stored, nothing is random, and the same inputs produce the same password
// on any platform for as long as the tuning parameters stay the same.
//
// # Getting Started
//
//	dp, err := detpass.New(detpass.NewOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pw := dp.Derive(secret, []byte("example.com"), []byte("2024"))
//	defer pw.Wipe()
//
//	rating := detpass.Rate(dp.Strength(pw, []byte("2024")))
//	fmt.Printf("%s (%s)\n", pw.Bytes(), rating.Label)
//
// # Core Types
//
//   - [DetPass]: facade over the derivation core
//   - [Options]: categories, fixed length, tuning and strength policy
//   - [Password]: an owned, wipeable derived password
//   - [Rating]: strength bucket label and clamped fraction for display
//
// # Packages
//
//   - derive/: alphabet construction, length policy, the mixing loop,
//     category coverage and strength scoring
//   - crypto/: secure wiping, tuning fingerprints, logging helpers, clock
//   - limits/: numeric bounds and input validation for front ends
//   - cmd/detpass/: the command-line front end
//
// # Security Considerations
//
// The derivation is not a key derivation function with formal security
// properties. It is designed so that outputs look pseudo-random and are not
// easily inverted by inspection. The tuning multipliers act as a fixed key
// schedule: keep them private and pinned; [DetPass.Fingerprint] identifies
// them without printing them.
//
// Callers own every buffer they pass in or receive. Wipe the secret and the
// derived password as soon as they are no longer needed.
package detpass
