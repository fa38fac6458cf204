// Package rules holds the declarative rule catalog and the engine that
// evaluates it against extracted document text and per-image OCR output.
// Catalogs are process-wide, read-only configuration; every analysis call
// produces fresh evaluation records.
package rules

import "github.com/wudi/docaudit/match"

// ChecklistRule demands that all keywords appear together on one line (the
// context line), optionally alongside an affirmative "yes" marker.
type ChecklistRule struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	KeywordsAll []string `yaml:"keywords_all"`
	Category    string   `yaml:"category"`
	RequireYes  bool     `yaml:"require_yes"`
	Hint        string   `yaml:"hint"`
}

// TextExpectation demands keywords at whole-document scope: every entry of
// KeywordsAll plus at least one of KeywordsAny when that set is non-empty.
type TextExpectation struct {
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	KeywordsAll []string `yaml:"keywords_all"`
	KeywordsAny []string `yaml:"keywords_any"`
	Category    string   `yaml:"category"`
	Hint        string   `yaml:"hint"`
}

// FieldBundle names an API payload contract: every field name must be
// textually present somewhere in the document.
type FieldBundle struct {
	ID       string   `yaml:"id"`
	Label    string   `yaml:"label"`
	Fields   []string `yaml:"fields"`
	Category string   `yaml:"category"`
	Hint     string   `yaml:"hint"`
}

// ImageTextExpectation is evaluated against per-image OCR text with
// per-keyword similarity thresholds, optionally falling back to the whole
// document text when no image yields evidence.
type ImageTextExpectation struct {
	ID               string   `yaml:"id"`
	Label            string   `yaml:"label"`
	Description      string   `yaml:"description"`
	KeywordsAll      []string `yaml:"keywords_all"`
	KeywordsAny      []string `yaml:"keywords_any"`
	ThresholdAll     int      `yaml:"threshold_all"`
	ThresholdAny     int      `yaml:"threshold_any"`
	DocumentFallback bool     `yaml:"document_fallback"`
	Category         string   `yaml:"category"`
	Hint             string   `yaml:"hint"`
}

// thresholdAll returns the configured all-set threshold or the default.
func (e ImageTextExpectation) thresholdAll() int {
	if e.ThresholdAll > 0 {
		return e.ThresholdAll
	}
	return match.DefaultThreshold
}

func (e ImageTextExpectation) thresholdAny() int {
	if e.ThresholdAny > 0 {
		return e.ThresholdAny
	}
	return match.DefaultThreshold
}

// Catalog bundles every rule family. Evaluation order is fixed: checklist,
// text expectations, request bundle, response bundle; image expectations are
// keyed separately.
type Catalog struct {
	Checklist         []ChecklistRule        `yaml:"checklist"`
	TextExpectations  []TextExpectation      `yaml:"text_expectations"`
	RequestFields     FieldBundle            `yaml:"request_fields"`
	ResponseFields    FieldBundle            `yaml:"response_fields"`
	ImageExpectations []ImageTextExpectation `yaml:"image_expectations"`
}

// Evaluation is the engine output for one checklist rule, text expectation,
// or field bundle.
type Evaluation struct {
	Label           string   `json:"label"`
	Passed          bool     `json:"passed"`
	FoundKeywords   []string `json:"found_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Category        string   `json:"category"`
	Hint            string   `json:"hint"`
	Context         string   `json:"context"`
}

// Evidence points at one image whose OCR text satisfied an expectation.
type Evidence struct {
	Origin  string `json:"origin"`
	Index   int    `json:"index"`
	Snippet string `json:"snippet"`
}

// Analysis explains how an image expectation was (or was not) satisfied.
type Analysis struct {
	RequirementsMet bool       `json:"requirements_met"`
	Description     string     `json:"description"`
	Evidence        []Evidence `json:"evidence,omitempty"`
	Hint            string     `json:"hint,omitempty"`
	Note            string     `json:"note,omitempty"`
	Reason          string     `json:"reason,omitempty"`
}

// ImageMatch is the engine output for one image-text expectation. Score,
// HashDistance, and ReferenceFile are reserved for reference-image comparison
// and serialize as explicit nulls.
type ImageMatch struct {
	Matched       bool     `json:"matched"`
	Score         *float64 `json:"score"`
	HashDistance  *float64 `json:"hash_distance"`
	Label         string   `json:"label"`
	ReferenceFile *string  `json:"reference_file"`
	Analysis      Analysis `json:"analysis"`
	Expectation   string   `json:"expectation"`
	ExpectationID string   `json:"expectation_id"`
}
