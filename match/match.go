// Package match is the single matching contract shared by every rule family:
// a keyword is present when its normalized or compact form is a literal
// substring of the corresponding document variant, or when its best partial
// alignment inside the normalized variant scores at or above a threshold.
// Similarity is literal partial-substring alignment, never token-set
// containment.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/wudi/docaudit/textnorm"
)

// DefaultThreshold is the similarity score (0-100) a keyword must reach when
// it is not a literal substring.
const DefaultThreshold = 80

// affirmative is the marker token some checklist rules demand.
const affirmative = "yes"

// Ratio scores the best alignment of the shorter string inside the longer
// one, 0-100. Empty inputs score zero.
func Ratio(keyword, text string) int {
	if keyword == "" || text == "" {
		return 0
	}
	return fuzzy.PartialRatio(keyword, text)
}

// Contains reports whether keyword is present in the variant pair, using the
// literal-or-fuzzy rule at DefaultThreshold.
func Contains(v textnorm.Variants, keyword string) bool {
	return ContainsThreshold(v, keyword, DefaultThreshold)
}

// ContainsThreshold is Contains with an explicit similarity threshold.
func ContainsThreshold(v textnorm.Variants, keyword string, threshold int) bool {
	kw := textnorm.Line(keyword)
	if kw.Normalized == "" {
		return false
	}
	if strings.Contains(v.Normalized, kw.Normalized) || strings.Contains(v.Compact, kw.Compact) {
		return true
	}
	return Ratio(kw.Normalized, v.Normalized) >= threshold
}

// Affirmative reports whether the variant pair carries the "yes" marker,
// literally or at DefaultThreshold similarity.
func Affirmative(v textnorm.Variants) bool {
	if strings.Contains(v.Normalized, affirmative) || strings.Contains(v.Compact, affirmative) {
		return true
	}
	return Ratio(affirmative, v.Normalized) >= DefaultThreshold
}
