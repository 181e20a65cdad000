package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs
// to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeTreatment keeps treatment names comparable with the catalog,
// which stores display-cased names ("Teeth Cleaning"), so only whitespace
// is normalized, never case.
func NormalizeTreatment(treatment string) string {
	return TrimAndNormalize(treatment)
}

func NormalizeSlot(slot string) string {
	return TrimAndNormalize(slot)
}
