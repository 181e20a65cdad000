package sanitizer

import (
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims an address so that lookups against the
// users collection are case-insensitive on the wire.
func NormalizeEmail(input string) string {
	p := Pipeline{
		trimAndLower,
	}
	return p.Apply(input)
}
