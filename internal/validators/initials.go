package validators

import "strings"

// NormalizeInitials uppercases and trims user initials. Valid initials are
// 1 to 3 characters.
func NormalizeInitials(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if n := len([]rune(s)); n < 1 || n > 3 {
		return "", false
	}
	return s, true
}
