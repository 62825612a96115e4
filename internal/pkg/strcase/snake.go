// Package strcase converts identifiers between naming conventions.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake converts camelCase, PascalCase and acronym runs to snake_case:
// "newPassword" -> "new_password", "HTTPServer" -> "http_server",
// "parent_phone" is left alone.
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
