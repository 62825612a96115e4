package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Length is the number of digits in a code.
const Length = 6

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws codes uniformly from [10^(n-1), 10^n - 1], so a code never
// starts with zero.
type Numeric struct {
	digits int
	src    io.Reader
	min    *big.Int
	span   *big.Int
}

// NewNumeric returns a generator for codes of the given number of digits.
// digits below 1 fall back to Length.
func NewNumeric(digits int) *Numeric {
	if digits < 1 {
		digits = Length
	}

	ten := big.NewInt(10)
	lo := new(big.Int).Exp(ten, big.NewInt(int64(digits-1)), nil)
	hi := new(big.Int).Exp(ten, big.NewInt(int64(digits)), nil)

	return &Numeric{
		digits: digits,
		src:    rand.Reader,
		min:    lo,
		span:   new(big.Int).Sub(hi, lo),
	}
}

func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.src, n.span)
	if err != nil {
		return "", fmt.Errorf("otp: read random: %w", err)
	}
	return fmt.Sprintf("%0*d", n.digits, v.Add(v, n.min)), nil
}

// Valid reports whether code is exactly Length ASCII digits.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
