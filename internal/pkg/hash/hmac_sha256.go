package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 produces lowercase hex HMAC-SHA256 digests keyed by a server secret.
type HMACSHA256 struct {
	secret []byte
}

// NewHMACSHA256 creates a keyed hasher.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

func (s *HMACSHA256) Hash(plaintext string) ([]byte, error) {
	return s.sum(plaintext), nil
}

func (s *HMACSHA256) Verify(hashed, plaintext string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.sum(plaintext)) == 1
}

func (s *HMACSHA256) sum(plaintext string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(plaintext))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}
