package entity

import "strings"

type Student struct {
	FullName  string
	FirstName string
	LastName  string
}

// Name prefers the full name and falls back to "first last".
func (s Student) Name() string {
	if n := strings.TrimSpace(s.FullName); n != "" {
		return n
	}
	return strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
}
