package models

import (
	"strings"
	"unicode"
)

// CleanDigits strips every non-digit rune from s.
func CleanDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a 10-digit local number as "+91 XXXXX XXXXX".
// Anything else is returned unchanged.
func FormatPhone(phone string) string {
	d := CleanDigits(phone)
	if len(d) != 10 {
		return phone
	}
	return "+91 " + d[:5] + " " + d[5:]
}

// IsLettersAndSpaces reports whether s consists of letters and spaces only.
func IsLettersAndSpaces(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}
