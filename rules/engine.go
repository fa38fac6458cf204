package rules

import (
	"sort"
	"strings"

	"github.com/wudi/docaudit/match"
	"github.com/wudi/docaudit/observability"
	"github.com/wudi/docaudit/textnorm"
)

// Document is the normalized view of one extracted corpus: the original
// lines, their variant pairs, and the folded whole-document variants.
type Document struct {
	Lines        []string
	LineVariants []textnorm.Variants
	Variants     textnorm.Variants
}

// NewDocument normalizes lines once for all rule families.
func NewDocument(lines []string) *Document {
	lv := textnorm.Lines(lines)
	return &Document{
		Lines:        lines,
		LineVariants: lv,
		Variants:     textnorm.Document(lv),
	}
}

// ImageText is the OCR text recovered from one extracted image.
type ImageText struct {
	Origin string
	Index  int
	Text   string
}

const evidenceSnippetWidth = 160

// EvaluateText runs the three text-scoped families in their fixed order and
// merges them into one ordered set.
func (c *Catalog) EvaluateText(doc *Document, trail *observability.Trail) *EvaluationSet {
	set := EvaluateChecklist(c.Checklist, doc, trail)
	set.Merge(EvaluateTextExpectations(c.TextExpectations, doc, trail))
	if c.RequestFields.ID != "" {
		set.Merge(EvaluateFieldBundle(c.RequestFields, doc, trail))
	}
	if c.ResponseFields.ID != "" {
		set.Merge(EvaluateFieldBundle(c.ResponseFields, doc, trail))
	}
	return set
}

// EvaluateChecklist anchors each rule at the first line containing every
// required keyword. Keywords absent from the context line are still credited
// when present anywhere in the document; the affirmative marker is only
// accepted on the context line itself.
func EvaluateChecklist(rulesList []ChecklistRule, doc *Document, trail *observability.Trail) *EvaluationSet {
	set := &EvaluationSet{}
	for _, rule := range rulesList {
		ctxIdx := findContext(doc, rule.KeywordsAll, nil)

		var found, missing []string
		context := ""
		if ctxIdx >= 0 {
			context = doc.Lines[ctxIdx]
			line := doc.LineVariants[ctxIdx]
			for _, kw := range rule.KeywordsAll {
				switch {
				case match.Contains(line, kw):
					found = append(found, kw)
				case match.Contains(doc.Variants, kw):
					found = append(found, kw)
				default:
					missing = append(missing, kw)
				}
			}
			if rule.RequireYes && !match.Affirmative(line) {
				missing = append(missing, "yes")
			}
		} else {
			for _, kw := range rule.KeywordsAll {
				if match.Contains(doc.Variants, kw) {
					found = append(found, kw)
				} else {
					missing = append(missing, kw)
				}
			}
			if rule.RequireYes {
				missing = append(missing, "yes")
			}
		}

		passed := len(missing) == 0
		trail.Addf("Checklist item '%s' => %s", rule.Label, verdict(passed))
		set.add(rule.ID, &Evaluation{
			Label:           rule.Label,
			Passed:          passed,
			FoundKeywords:   sortedSet(found),
			MissingKeywords: sortedSet(missing),
			Category:        rule.Category,
			Hint:            rule.Hint,
			Context:         context,
		})
	}
	return set
}

// EvaluateTextExpectations checks all-set and any-set keywords purely at
// whole-document scope; the context line is located for display only.
func EvaluateTextExpectations(expectations []TextExpectation, doc *Document, trail *observability.Trail) *EvaluationSet {
	set := &EvaluationSet{}
	for _, exp := range expectations {
		var found, missing []string
		for _, kw := range exp.KeywordsAll {
			if match.Contains(doc.Variants, kw) {
				found = append(found, kw)
			} else {
				missing = append(missing, kw)
			}
		}
		if len(exp.KeywordsAny) > 0 {
			var anyFound []string
			for _, kw := range exp.KeywordsAny {
				if match.Contains(doc.Variants, kw) {
					anyFound = append(anyFound, kw)
				}
			}
			if len(anyFound) == 0 {
				missing = append(missing, exp.KeywordsAny...)
			} else {
				found = append(found, anyFound...)
			}
		}

		context := ""
		if idx := findContext(doc, exp.KeywordsAll, exp.KeywordsAny); idx >= 0 {
			context = doc.Lines[idx]
		}

		passed := len(missing) == 0
		trail.Addf("Text expectation '%s' => %s", exp.Label, verdict(passed))
		set.add(exp.ID, &Evaluation{
			Label:           exp.Label,
			Passed:          passed,
			FoundKeywords:   sortedSet(found),
			MissingKeywords: sortedSet(missing),
			Category:        exp.Category,
			Hint:            exp.Hint,
			Context:         context,
		})
	}
	return set
}

// EvaluateFieldBundle requires every field name at whole-document scope. The
// context line is the first line containing any field, for display only.
func EvaluateFieldBundle(bundle FieldBundle, doc *Document, trail *observability.Trail) *EvaluationSet {
	var found, missing []string
	for _, field := range bundle.Fields {
		if match.Contains(doc.Variants, field) {
			found = append(found, field)
		} else {
			missing = append(missing, field)
		}
	}

	context := ""
	if idx := findContext(doc, nil, bundle.Fields); idx >= 0 {
		context = doc.Lines[idx]
	}

	passed := len(missing) == 0
	trail.Addf("Payload expectation '%s' => %s", bundle.Label, verdict(passed))

	set := &EvaluationSet{}
	set.add(bundle.ID, &Evaluation{
		Label:           bundle.Label,
		Passed:          passed,
		FoundKeywords:   sortedSet(found),
		MissingKeywords: sortedSet(missing),
		Category:        bundle.Category,
		Hint:            bundle.Hint,
		Context:         context,
	})
	return set
}

// EvaluateImages scores every expectation against each image's OCR text.
// Images satisfying both keyword sets become evidence; with no evidence and
// fallback enabled, the same test runs once against the whole-document text.
func (c *Catalog) EvaluateImages(entries []ImageText, doc *Document, ocrAvailable bool, trail *observability.Trail) *ImageMatchSet {
	normalized := make([]string, len(entries))
	for i, entry := range entries {
		normalized[i] = textnorm.Normalize(entry.Text)
	}

	combined := strings.Join(normalized, " ")
	if len(entries) > 0 && combined != "" {
		trail.Addf("Aggregated OCR text length: %d characters across %d images", len(combined), len(entries))
	}
	if len(entries) == 0 {
		trail.Add("No OCR text extracted from images; visual checks may be incomplete")
	}

	set := &ImageMatchSet{}
	for _, exp := range c.ImageExpectations {
		var evidence []Evidence
		for i, entry := range entries {
			if imageTextSatisfies(exp, normalized[i]) {
				evidence = append(evidence, Evidence{
					Origin:  entry.Origin,
					Index:   entry.Index,
					Snippet: textnorm.Shorten(entry.Text, evidenceSnippetWidth, "…"),
				})
			}
		}

		matched := len(evidence) > 0
		fallback := false
		if !matched && exp.DocumentFallback {
			matched = imageTextSatisfies(exp, doc.Variants.Normalized)
			fallback = matched
		}

		analysis := Analysis{
			RequirementsMet: matched,
			Description:     exp.Description,
			Evidence:        evidence,
			Hint:            exp.Hint,
		}
		if fallback && len(evidence) == 0 {
			analysis.Note = "Matched via document text fallback (no OCR evidence)."
		}
		if !matched {
			if ocrAvailable {
				analysis.Reason = "Condition not met in image OCR output"
			} else {
				analysis.Reason = "OCR unavailable (install Tesseract)"
			}
		}

		set.add(exp.ID, &ImageMatch{
			Matched:       matched,
			Label:         exp.Label,
			Analysis:      analysis,
			Expectation:   exp.Description,
			ExpectationID: exp.ID,
		})

		if matched {
			trail.Addf("Visual expectation '%s' => MATCH", exp.Label)
		} else {
			trail.Addf("Visual expectation '%s' => NO MATCH", exp.Label)
		}
		for _, ev := range evidence {
			trail.Addf("  · Evidence from %s: %s", ev.Origin, ev.Snippet)
		}
	}
	return set
}

// imageTextSatisfies applies the all/any keyword tests with the expectation's
// own thresholds. Empty text never satisfies anything.
func imageTextSatisfies(exp ImageTextExpectation, text string) bool {
	if text == "" {
		return false
	}
	for _, kw := range exp.KeywordsAll {
		if match.Ratio(kw, text) < exp.thresholdAll() {
			return false
		}
	}
	if len(exp.KeywordsAny) > 0 {
		hit := false
		for _, kw := range exp.KeywordsAny {
			if match.Ratio(kw, text) >= exp.thresholdAny() {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// findContext returns the index of the first line whose variants contain
// every keyword of all and, when anyOf is non-empty, at least one of anyOf;
// -1 when no line qualifies. With both sets empty the scan is vacuous and
// anchors the first line.
func findContext(doc *Document, all, anyOf []string) int {
	for i, line := range doc.LineVariants {
		if !containsAll(line, all) {
			continue
		}
		if len(anyOf) > 0 && !containsAny(line, anyOf) {
			continue
		}
		return i
	}
	return -1
}

func containsAll(v textnorm.Variants, keywords []string) bool {
	for _, kw := range keywords {
		if !match.Contains(v, kw) {
			return false
		}
	}
	return true
}

func containsAny(v textnorm.Variants, keywords []string) bool {
	for _, kw := range keywords {
		if match.Contains(v, kw) {
			return true
		}
	}
	return false
}

// sortedSet deduplicates and sorts keywords for deterministic output. The
// result is never nil so empty sets serialize as [].
func sortedSet(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

func verdict(passed bool) string {
	if passed {
		return "PASSED"
	}
	return "FAILED"
}
