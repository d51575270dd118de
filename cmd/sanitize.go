package cmd

import "strings"

// sanitizePath replaces control characters (runes < 0x20 or == 0x7F) with '?'
// before including user-supplied values in human-readable output, preventing
// ANSI injection through chapter titles or paths.
func sanitizePath(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '?'
		}
		return r
	}, s)
}
