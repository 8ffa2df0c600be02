package content

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way browsers' encodeURIComponent
// does: everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is escaped as UTF-8
// bytes. Repository names are encoded with it so a name holding "/" stays a
// single path segment.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
