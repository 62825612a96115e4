package otp

import (
	"bytes"
	"strconv"
	"testing"
)

func TestNumeric_GenerateRange(t *testing.T) {
	g := NewNumeric(Length)

	for i := 0; i < 2000; i++ {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if !Valid(code) {
			t.Fatalf("invalid code %q", code)
		}
		n, _ := strconv.Atoi(code)
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestNumeric_GenerateReadError(t *testing.T) {
	// Arrange
	g := NewNumeric(6)
	g.src = bytes.NewReader(nil)

	// Act
	_, err := g.Generate()

	// Assert
	if err == nil {
		t.Fatalf("expected error from exhausted source")
	}
}

func TestValid(t *testing.T) {
	tests := map[string]bool{
		"123456":  true,
		"000000":  true,
		"12345":   false,
		"1234567": false,
		"12a456":  false,
		"１２３４５６":  false,
		"":        false,
	}
	for in, want := range tests {
		if got := Valid(in); got != want {
			t.Fatalf("Valid(%q) = %v, want %v", in, got, want)
		}
	}
}
