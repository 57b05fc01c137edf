package importer

import "strings"

// NormalizePhone drops every character that is not an ASCII digit or '+'.
// Length and country code are not checked.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= '0' && c <= '9') || c == '+' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
