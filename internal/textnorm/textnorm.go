// Package textnorm cleans free-text catalog fields before they are displayed or exported.
package textnorm

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalize strips superscript digits and quote marks, turns en and em dashes into
// plain hyphens and collapses whitespace. The result is stable under repeated calls.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := transform.Chain(
		runes.Remove(runes.Predicate(isNoise)),
		runes.Map(plainDash),
	)

	cleaned, _, err := transform.String(t, text)
	if err != nil {
		// runes transformers never fail on valid strings; keep the input usable anyway.
		cleaned = text
	}

	return strings.Join(strings.Fields(cleaned), " ")
}

func isNoise(r rune) bool {
	switch {
	case r == '¹', r == '²', r == '³':
		return true
	case r >= '⁰' && r <= '⁹':
		return true
	case r == '`', r == '\'', r == '‘', r == '’':
		return true
	}
	return false
}

func plainDash(r rune) rune {
	if r == '–' || r == '—' {
		return '-'
	}
	return r
}
