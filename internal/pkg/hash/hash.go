package hash

import (
	"errors"
	"strings"
)

// ErrUnknownAlgorithm is returned by NewPassword for an unsupported name.
var ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")

// Hash hashes a plaintext and checks a plaintext against a stored hash.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}

// NewPassword builds the password hasher selected by algorithm. The default
// "plain" matches the account tables as the login pages read them; "bcrypt"
// and "argon2id" are opt-in.
func NewPassword(algorithm string, bcryptCost int, pepper string) (Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", "plain":
		return NewPlain(), nil
	case "bcrypt":
		return NewBcrypt(bcryptCost, pepper), nil
	case "argon2id":
		return NewArgon2id(pepper), nil
	default:
		return nil, ErrUnknownAlgorithm
	}
}
