// Package crypto holds the memory-hygiene and bookkeeping helpers shared by
// the password derivation packages.
//
// # Secure Memory Handling
//
// Every buffer that holds a secret, a value folded from a secret, or a
// derived password must be wiped before it is released:
//
//	acc := make([]uint16, n)
//	defer crypto.WipeUint16s(acc)
//
//	alphabet := make([]byte, 256)
//	defer crypto.ZeroBytes(alphabet)
//
// [SecureWipe] overwrites through crypto/subtle and runtime.KeepAlive so the
// store is not elided by the compiler.
//
// # Parameter Fingerprints
//
// [Fingerprint] digests a labelled list of 32-bit words with BLAKE2b-256 and
// keeps the first [FingerprintSize] bytes. It is used to identify a tuning
// parameter set without printing it.
//
// # Logging
//
// [LoggerHelper] wraps logrus with standard function and package fields.
// Sensitive buffers are described with [RedactedFields], which reports sizes
// only.
//
// # Deterministic Testing
//
// Time-dependent callers take a [TimeProvider]; tests inject a fixed clock:
//
//	year := crypto.CurrentYear(fixedClock)
package crypto
