// Package textnorm produces the canonical string forms used for all keyword
// matching: a lowercase, whitespace-collapsed "normalized" form and a
// space-stripped "compact" form. Every comparison in the rule engine runs
// against one of these two variants so that a single normalization pass
// defines equality for the whole system.
package textnorm

import (
	"strings"
	"unicode"
)

// Variants is the pair of comparable forms derived from a line or corpus.
type Variants struct {
	// Normalized is the lowercase form with unicode dashes folded to "-" and
	// whitespace runs collapsed to single spaces.
	Normalized string
	// Compact is Normalized with all spaces removed, catching matches that
	// run together across token or line boundaries.
	Compact string
}

// Normalize folds unicode dash variants to ASCII "-", collapses whitespace
// runs to a single space, trims, and lowercases. It is idempotent.
func Normalize(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	space := false
	for _, r := range line {
		switch {
		case r >= '‐' && r <= '―':
			b.WriteByte('-')
			space = false
		case unicode.IsSpace(r):
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// Line builds the variant pair for a single line.
func Line(line string) Variants {
	normalized := Normalize(line)
	return Variants{
		Normalized: normalized,
		Compact:    strings.ReplaceAll(normalized, " ", ""),
	}
}

// Document folds per-line variants into whole-document variants: normalized
// forms joined with spaces (so phrases can span line breaks) and compact
// forms concatenated (so run-together matches survive line breaks too).
func Document(lines []Variants) Variants {
	normalized := make([]string, len(lines))
	compact := make([]string, len(lines))
	for i, v := range lines {
		normalized[i] = v.Normalized
		compact[i] = v.Compact
	}
	return Variants{
		Normalized: strings.Join(normalized, " "),
		Compact:    strings.Join(compact, ""),
	}
}

// Lines builds the variant pair for every line.
func Lines(lines []string) []Variants {
	out := make([]Variants, len(lines))
	for i, line := range lines {
		out[i] = Line(line)
	}
	return out
}
