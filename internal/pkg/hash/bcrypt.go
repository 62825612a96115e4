package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes with bcrypt. The pepper is appended to the plaintext and must
// live in configuration, never next to the hashes.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher; a cost outside bcrypt's range falls back
// to bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost, pepper: pepper}
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+h.pepper), h.cost)
}

func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+h.pepper)) == nil
}
