package project

import "fmt"

// MaxTitleLen is the longest chapter title accepted, in bytes.
const MaxTitleLen = 500

// ValidateFieldValue returns an error if s contains any control character not
// permitted in names and titles. The range 0x09–0x0D (TAB, LF, VT, FF, CR)
// is allowed; all other characters below U+0020 and DEL (0x7F) are rejected.
func ValidateFieldValue(s string) error {
	if ContainsControlChars(s) {
		return fmt.Errorf("value contains invalid control character")
	}
	return nil
}

// ContainsControlChars reports whether s holds a disallowed control character.
func ContainsControlChars(s string) bool {
	for _, r := range s {
		if (r < 0x20 && (r < 0x09 || r > 0x0D)) || r == 0x7F {
			return true
		}
	}
	return false
}

// ValidateTitle checks a chapter title for length and control characters.
func ValidateTitle(title string) error {
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must be %d characters or fewer", MaxTitleLen)
	}
	if err := ValidateFieldValue(title); err != nil {
		return fmt.Errorf("title must not contain control characters")
	}
	return nil
}
