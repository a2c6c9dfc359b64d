package textutil

import (
	"strings"
	"unicode/utf8"
)

// Truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
// Invalid bytes elsewhere in s are dropped so the result is always valid
// UTF-8 and safe for Postgres text columns.
func Truncate(s string, max int) string {
	if len(s) > max {
		s = s[:max]
		// mundur sampai awal rune
		for len(s) > 0 {
			r, size := utf8.DecodeLastRuneInString(s)
			if r != utf8.RuneError || size > 1 {
				break
			}
			s = s[:len(s)-size]
		}
	}
	return strings.ToValidUTF8(s, "")
}
