package resetclient

import "strings"

// CodeInput models the row of single-digit fields the code is typed into.
type CodeInput struct {
	digits []byte
	focus  int
}

func NewCodeInput(n int) *CodeInput {
	if n < 1 {
		n = 6
	}
	return &CodeInput{digits: make([]byte, n)}
}

func (c *CodeInput) Len() int   { return len(c.digits) }
func (c *CodeInput) Focus() int { return c.focus }

// Field returns the digit at i, or 0 when empty.
func (c *CodeInput) Field(i int) byte {
	if i < 0 || i >= len(c.digits) {
		return 0
	}
	return c.digits[i]
}

// Type enters r in the focused field. A digit moves focus forward; any
// other rune is ignored.
func (c *CodeInput) Type(r rune) {
	if r < '0' || r > '9' {
		return
	}
	c.digits[c.focus] = byte(r)
	if c.focus < len(c.digits)-1 {
		c.focus++
	}
}

// Backspace clears the focused field, or moves back when it is already empty.
func (c *CodeInput) Backspace() {
	if c.digits[c.focus] != 0 {
		c.digits[c.focus] = 0
		return
	}
	if c.focus > 0 {
		c.focus--
	}
}

// Paste spreads the first Len characters of s over the fields from the
// start. Non-digits leave their field untouched.
func (c *CodeInput) Paste(s string) {
	runes := []rune(s)
	if len(runes) > len(c.digits) {
		runes = runes[:len(c.digits)]
	}
	for i, r := range runes {
		if r >= '0' && r <= '9' {
			c.digits[i] = byte(r)
		}
	}
	if len(runes) == len(c.digits) {
		c.focus = len(c.digits) - 1
	}
}

func (c *CodeInput) Clear() {
	clear(c.digits)
	c.focus = 0
}

// Code joins the fields. ok is false while any field is empty.
func (c *CodeInput) Code() (code string, ok bool) {
	var b strings.Builder
	for _, d := range c.digits {
		if d == 0 {
			return "", false
		}
		b.WriteByte(d)
	}
	return b.String(), true
}
