package planning

import (
	"strings"
	"unicode/utf8"
)

const (
	// minLocationLen and maxLocationLen bound the trimmed/raw length of a
	// free-text location query, counted in runes so multi-byte place names
	// are measured the same as ASCII ones.
	minLocationLen = 2
	maxLocationLen = 200
)

// illegalLocationChars are rejected outright. The blacklist guards input
// quality (obviously malformed queries), not a security boundary: the text
// only ever reaches a percent-encoded URL query parameter.
const illegalLocationChars = "<>;|&$"

// ValidateLocationText checks the shape of a free-text place query before it
// is allowed anywhere near the network.
func ValidateLocationText(s string) error {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return NewError(KindEmpty, "location cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) < minLocationLen {
		return NewError(KindTooShort, "location must be at least %d characters long", minLocationLen)
	}
	if utf8.RuneCountInString(s) > maxLocationLen {
		return NewError(KindTooLong, "location is too long (max %d characters)", maxLocationLen)
	}
	if strings.ContainsAny(s, illegalLocationChars) {
		return NewError(KindIllegalCharacter, "invalid characters in location")
	}
	return nil
}
