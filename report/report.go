// Package report renders analysis results for human review: a Markdown audit
// report and its HTML conversion. It sits on the consumer side of the result
// schema and never influences verdicts.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wudi/docaudit/audit"
	"github.com/wudi/docaudit/rules"
)

// Markdown renders the result as a Markdown document: summary counts, the
// per-category breakdown, every rule verdict with its evidence, and the image
// expectations with their analyses.
func Markdown(result *audit.Result) string {
	var b strings.Builder
	summary := result.Payload.Summary

	fmt.Fprintf(&b, "# Audit report: %s\n\n", result.File)
	fmt.Fprintf(&b, "**Status:** %s\n\n", strings.ToUpper(string(result.Status)))
	fmt.Fprintf(&b, "**Checks:** %d/%d passed · **Visual references:** %d/%d matched\n\n",
		summary.ChecksPassed, summary.TotalChecks, summary.ReferencesMatched, summary.References)

	b.WriteString("## Category breakdown\n\n")
	b.WriteString("| Category | Passed | Total |\n|---|---|---|\n")
	categories := make([]string, 0, len(summary.CategoryBreakdown))
	for category := range summary.CategoryBreakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		stat := summary.CategoryBreakdown[category]
		fmt.Fprintf(&b, "| %s | %d | %d |\n", category, stat.Passed, stat.Total)
	}
	b.WriteString("\n")

	b.WriteString("## Checks\n\n")
	result.Checklist.Each(func(id string, ev *rules.Evaluation) {
		fmt.Fprintf(&b, "### %s %s\n\n", icon(ev.Passed), ev.Label)
		if len(ev.MissingKeywords) > 0 {
			fmt.Fprintf(&b, "- Missing: `%s`\n", strings.Join(ev.MissingKeywords, "`, `"))
		}
		if len(ev.FoundKeywords) > 0 {
			fmt.Fprintf(&b, "- Found: `%s`\n", strings.Join(ev.FoundKeywords, "`, `"))
		}
		if ev.Context != "" {
			fmt.Fprintf(&b, "- Context: %s\n", ev.Context)
		}
		if !ev.Passed && ev.Hint != "" {
			fmt.Fprintf(&b, "- Hint: %s\n", ev.Hint)
		}
		b.WriteString("\n")
	})

	if result.Images.Len() > 0 {
		b.WriteString("## Visual expectations\n\n")
		result.Images.Each(func(id string, m *rules.ImageMatch) {
			fmt.Fprintf(&b, "### %s %s\n\n", icon(m.Matched), m.Label)
			fmt.Fprintf(&b, "%s\n\n", m.Expectation)
			for _, ev := range m.Analysis.Evidence {
				fmt.Fprintf(&b, "- Evidence from %s: %s\n", ev.Origin, ev.Snippet)
			}
			if m.Analysis.Note != "" {
				fmt.Fprintf(&b, "- Note: %s\n", m.Analysis.Note)
			}
			if m.Analysis.Reason != "" {
				fmt.Fprintf(&b, "- Reason: %s\n", m.Analysis.Reason)
			}
			b.WriteString("\n")
		})
	}

	if len(result.Logs) > 0 {
		b.WriteString("## Log\n\n```\n")
		for _, line := range result.Logs {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString("```\n")
	}

	return b.String()
}

// HTML converts the Markdown report with table support enabled.
func HTML(result *audit.Result) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(result)), &buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func icon(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
