// Package audit wires the extraction, OCR, and rule-engine stages into the
// single analysis entry point. One call to Analyze fully consumes one
// document and returns one Result; the analyzer holds no mutable state across
// calls beyond the process-wide OCR capability cache.
package audit

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/wudi/docaudit/extract"
	"github.com/wudi/docaudit/observability"
	"github.com/wudi/docaudit/ocr"
	"github.com/wudi/docaudit/rules"
	"github.com/wudi/docaudit/textnorm"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
}

// IsAllowedFile reports whether the file name carries a supported extension.
// Callers are expected to validate uploads with this before analysis.
func IsAllowedFile(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// MimeType guesses the content type for a document path.
func MimeType(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Analyzer evaluates documents against a rule catalog.
type Analyzer struct {
	catalog    *rules.Catalog
	logger     observability.Logger
	converter  extract.Converter
	resolveOCR func() (ocr.Engine, bool)
	languages  []string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCatalog replaces the built-in rule catalog.
func WithCatalog(catalog *rules.Catalog) Option {
	return func(a *Analyzer) { a.catalog = catalog }
}

// WithLogger forwards trail lines to logger as they are recorded.
func WithLogger(logger observability.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithOCREngine injects an OCR engine, bypassing the process-wide capability
// probe. A nil engine disables OCR entirely.
func WithOCREngine(engine ocr.Engine) Option {
	return func(a *Analyzer) {
		a.resolveOCR = func() (ocr.Engine, bool) { return engine, engine != nil }
	}
}

// WithConverter replaces the legacy-.doc converter capability.
func WithConverter(conv extract.Converter) Option {
	return func(a *Analyzer) { a.converter = conv }
}

// WithLanguages sets OCR language hints.
func WithLanguages(langs ...string) Option {
	return func(a *Analyzer) { a.languages = append([]string(nil), langs...) }
}

// New builds an Analyzer with the default catalog, the process OCR
// capability, and a PATH-probed legacy-doc converter. OCR engines register
// themselves with the ocr package: blank-import ocr/tesseract for the
// Tesseract default (it links against libtesseract), or inject any engine via
// WithOCREngine. With no registered provider, image checks degrade to the
// OCR-unavailable path.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog:    rules.DefaultCatalog(),
		logger:     observability.NopLogger{},
		converter:  extract.NewExecConverter(),
		resolveOCR: ocr.Resolve,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze validates the document at filePath and returns the full report.
// resourceDir is reserved for reference-image comparison and is not read by
// the current checks. The only error is an unreadable or unparseable input
// file; every other problem degrades to log entries and failed checks.
func (a *Analyzer) Analyze(ctx context.Context, filePath, resourceDir string) (*Result, error) {
	trail := observability.NewTrail(a.logger)
	name := filepath.Base(filePath)
	trail.Addf("Starting analysis for %s", name)

	textLines, err := extract.TextLines(filePath, a.converter, trail)
	if err != nil {
		return nil, err
	}
	trail.Addf("Extracted %d text lines", len(textLines))

	images := extract.Images(filePath, trail)
	var entries []rules.ImageText
	for idx, img := range images {
		text := a.imageText(ctx, img, trail)
		if text != "" {
			entries = append(entries, rules.ImageText{
				Origin: img.Origin,
				Index:  idx + 1,
				Text:   text,
			})
		}
	}
	if len(entries) > 0 {
		trail.Addf("OCR extracted text from %d image(s)", len(entries))
	} else if len(images) > 0 {
		trail.Add("Images detected but no OCR text produced (check Tesseract installation)")
	}

	// OCR text joins the corpus so text rules can match screenshot content.
	combined := append([]string(nil), textLines...)
	for _, entry := range entries {
		combined = append(combined, nonEmptyLines(entry.Text)...)
	}

	doc := rules.NewDocument(combined)
	checklist := a.catalog.EvaluateText(doc, trail)
	_, ocrAvailable := a.resolveOCR()
	imageMatches := a.catalog.EvaluateImages(entries, doc, ocrAvailable, trail)

	status := StatusPassed
	if checklist.Passed() != checklist.Len() || imageMatches.Matched() != imageMatches.Len() {
		status = StatusFailed
	}
	trail.Addf("Analysis completed with status: %s", strings.ToUpper(string(status)))

	return &Result{
		File:      name,
		Checklist: checklist,
		Images:    imageMatches,
		Logs:      trail.Lines(),
		Status:    status,
		Payload:   buildPayload(name, checklist, imageMatches),
	}, nil
}

// imageText OCRs one image and releases it on every exit path.
func (a *Analyzer) imageText(ctx context.Context, img *extract.Image, trail *observability.Trail) string {
	defer img.Release()

	engine, ok := a.resolveOCR()
	if !ok {
		trail.Addf("OCR engine unavailable; unable to OCR %s", img.Origin)
		return ""
	}

	result, err := engine.Recognize(ctx, ocr.InputFromImage(img, ocr.WithLanguages(a.languages...)))
	if err != nil {
		trail.Addf("OCR failed for %s: %v", img.Origin, err)
		return ""
	}

	text := strings.TrimSpace(result.PlainText)
	if text != "" {
		trail.Addf("[Image OCR] %s: %s", img.Origin, textnorm.Shorten(text, 140, " [...]"))
	} else {
		trail.Addf("[Image OCR] %s: (no text detected)", img.Origin)
	}
	return text
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
