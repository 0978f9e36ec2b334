package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxNameLength = 100

// SanitizeName normalizes a generated name for use in markup attributes:
// NFC normalization first, then every rune outside [A-Za-z0-9_] becomes an
// underscore, capped at 100 bytes.
func SanitizeName(name string) string {
	name = norm.NFC.String(name)
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > maxNameLength {
		s = s[:maxNameLength]
	}
	return s
}
