package calendar

import (
	"strconv"
	"strings"
)

// LocalizeDigits maps each ASCII digit of s to the locale's digit glyph.
// Every other rune is kept as is.
func (l *Locale) LocalizeDigits(s string) string {
	if l.digits[0] == '0' {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			r = l.digits[r-'0']
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LocalizeInt renders n in base 10 with the locale's digit glyphs.
func (l *Locale) LocalizeInt(n int) string {
	return l.LocalizeDigits(strconv.Itoa(n))
}
