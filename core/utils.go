package core

import "strings"

// CleanString normalizes free-text input before validation: surrounding
// whitespace is dropped, and with lower set the result is lowercased
// (emails are compared case-insensitively throughout).
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		s = strings.ToLower(s)
	}
	return s
}
