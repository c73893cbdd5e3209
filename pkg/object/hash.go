package object

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashBytes computes the BLAKE2b-256 digest of data and returns it as a
// lowercase hex-encoded Hash. Blobs are addressed by the digest of their raw
// bytes; commits by the digest of their serialized form.
func HashBytes(data []byte) Hash {
	sum := blake2b.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashCommit returns the digest a commit is stored under. Only the
// serialized fields contribute; the in-memory Hash annotation does not.
func HashCommit(c *CommitObj) Hash {
	return HashBytes(MarshalCommit(c))
}

// Short returns the first n characters of h, or h itself when shorter.
func (h Hash) Short(n int) string {
	if len(h) <= n {
		return string(h)
	}
	return string(h[:n])
}

// IsHex reports whether s consists only of lowercase hex digits.
func IsHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
