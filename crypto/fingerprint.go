package crypto

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// FingerprintSize is the number of digest bytes kept in a fingerprint.
const FingerprintSize = 8

// Fingerprint returns a short BLAKE2b-256 digest of a domain label followed
// by the given words in big-endian order, hex encoded. It identifies a fixed
// parameter set (for example a build's tuning constants) so two builds can be
// compared without printing the parameters themselves.
//
// The intermediate encoding is wiped before returning.
func Fingerprint(label string, words ...uint32) string {
	buf := make([]byte, 0, len(label)+1+4*len(words))
	buf = append(buf, label...)
	buf = append(buf, 0)
	for _, w := range words {
		buf = binary.BigEndian.AppendUint32(buf, w)
	}
	defer ZeroBytes(buf)

	sum := blake2b.Sum256(buf)
	defer ZeroBytes(sum[:])

	return hex.EncodeToString(sum[:FingerprintSize])
}
