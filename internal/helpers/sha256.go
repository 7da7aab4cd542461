package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// shortLen is the number of hex characters used to label content.
const shortLen = 8

// SHA256 returns the hex encoded SHA-256 digest of content.
func SHA256(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ShortSHA256 returns the leading characters of SHA256(content), enough to
// tell scripts apart in URLs and log lines.
func ShortSHA256(content []byte) string {
	return SHA256(content)[:shortLen]
}

// SHA256Reader digests everything read from r.
func SHA256Reader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
