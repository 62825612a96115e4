package hash

import "crypto/subtle"

// Plain stores the secret as is. The portal's login pages compare the stored
// password directly, so the account tables keep plaintext until they migrate.
type Plain struct{}

func NewPlain() Plain { return Plain{} }

func (Plain) Hash(plaintext string) ([]byte, error) {
	return []byte(plaintext), nil
}

func (Plain) Verify(stored, plaintext string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plaintext)) == 1
}
