package audit

import (
	"bytes"
	"encoding/json"

	"github.com/wudi/docaudit/rules"
)

// Status is the aggregate verdict for one document.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// Result is the full outcome of one analysis call.
type Result struct {
	File      string
	Checklist *rules.EvaluationSet
	Images    *rules.ImageMatchSet
	Logs      []string
	Status    Status
	Payload   *Payload
}

// CategoryStat tallies rule outcomes for one category.
type CategoryStat struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
}

// Summary carries the aggregate counts consumed by reporting layers.
type Summary struct {
	TotalChecks       int                      `json:"total_checks"`
	ChecksPassed      int                      `json:"checks_passed"`
	References        int                      `json:"references"`
	ReferencesMatched int                      `json:"references_matched"`
	CategoryBreakdown map[string]*CategoryStat `json:"category_breakdown"`
}

// Payload is the stable response schema consumed by display layers.
type Payload struct {
	File      string               `json:"file"`
	Checklist *rules.EvaluationSet `json:"checklist"`
	Images    *rules.ImageMatchSet `json:"images"`
	Summary   Summary              `json:"summary"`
}

func buildPayload(file string, checklist *rules.EvaluationSet, images *rules.ImageMatchSet) *Payload {
	breakdown := make(map[string]*CategoryStat)
	checklist.Each(func(_ string, ev *rules.Evaluation) {
		category := ev.Category
		if category == "" {
			category = "general"
		}
		stat, ok := breakdown[category]
		if !ok {
			stat = &CategoryStat{}
			breakdown[category] = stat
		}
		stat.Total++
		if ev.Passed {
			stat.Passed++
		}
	})

	return &Payload{
		File:      file,
		Checklist: checklist,
		Images:    images,
		Summary: Summary{
			TotalChecks:       checklist.Len(),
			ChecksPassed:      checklist.Passed(),
			References:        images.Len(),
			ReferencesMatched: images.Matched(),
			CategoryBreakdown: breakdown,
		},
	}
}

// JSON serializes the payload as UTF-8 without HTML escaping, so URLs in
// keywords survive verbatim.
func (p *Payload) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
