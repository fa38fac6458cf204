package audit_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wudi/docaudit/audit"
	"github.com/wudi/docaudit/ocr"
	"github.com/wudi/docaudit/rules"
)

// compliantLines satisfies every rule in the default catalog at text scope.
var compliantLines = []string{
	"We maintain database to store the transaction details and status. YES",
	"Services payment confirmation to customer provided on basis of database status. YES",
	"7-8 transactions performed in the Security Audit process. YES",
	"Login credentials available till audit completion. YES",
	"We do not clear database records till audit completion. YES",
	"Provided UAT setup identical to production setup. YES",
	"Dual inquiry Status API implemented in response. YES",
	"Audit checklist implemented for integration and security audit. YES",
	"HDFC Collect Now branding uses the red and blue palette.",
	"Embed URL: api.razorpay.com/v1/checkout/embedded, status polled via api /v1/status",
	"Both payment success and payment failure scenarios are documented.",
	"Request: merchant_id, order_id, amount, currency, payment_capture, callback_url, customer_id, customer_email",
	"Response: payment_id, status, signature, acquirer_data, method",
}

// screenshotText satisfies every image expectation in the default catalog.
const screenshotText = "HDFC SmartCollect Portal\napi.razorpay.com/v1/checkout/embedded\nPayment successful\nPayment failed"

func writeDocx(t *testing.T, paragraphs []string, media map[string][]byte) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	escape := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>`)
		body.WriteString(escape.Replace(p))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	w, err := archive.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create body: %v", err)
	}
	if _, err := w.Write([]byte(body.String())); err != nil {
		t.Fatalf("write body: %v", err)
	}
	for name, data := range media {
		w, err := archive.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}

	path := filepath.Join(t.TempDir(), "evidence.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// stubEngine returns canned OCR output for every image.
type stubEngine struct {
	text string
	err  error
}

func (s stubEngine) Name() string { return "stub" }
func (s stubEngine) Recognize(_ context.Context, in ocr.Input) (ocr.Result, error) {
	if s.err != nil {
		return ocr.Result{}, s.err
	}
	return ocr.Result{InputID: in.ID, PlainText: s.text}, nil
}

func TestAnalyzeDatabaseChecklistScenario(t *testing.T) {
	path := writeDocx(t, []string{
		"We maintain database to store the transaction details and status. YES",
	}, nil)
	analyzer := audit.New(audit.WithOCREngine(nil))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	ev, ok := result.Checklist.Get("check_01_database")
	if !ok {
		t.Fatalf("check_01_database missing")
	}
	if !ev.Passed {
		t.Fatalf("expected check_01_database to pass, missing=%v", ev.MissingKeywords)
	}
}

func TestAnalyzeDatabaseChecklistMissingYes(t *testing.T) {
	path := writeDocx(t, []string{
		"We maintain database to store the transaction details and status.",
	}, nil)
	analyzer := audit.New(audit.WithOCREngine(nil))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	ev, _ := result.Checklist.Get("check_01_database")
	if ev.Passed {
		t.Fatalf("expected failure without YES")
	}
	if len(ev.MissingKeywords) != 1 || ev.MissingKeywords[0] != "yes" {
		t.Fatalf("missing = %v, want [yes]", ev.MissingKeywords)
	}
}

func TestAnalyzeFullPass(t *testing.T) {
	path := writeDocx(t, compliantLines, map[string][]byte{
		"word/media/screenshot.png": pngBytes(t),
	})
	analyzer := audit.New(audit.WithOCREngine(stubEngine{text: screenshotText}))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Status != audit.StatusPassed {
		result.Checklist.Each(func(id string, ev *rules.Evaluation) {
			if !ev.Passed {
				t.Logf("failed rule %s: missing %v", id, ev.MissingKeywords)
			}
		})
		result.Images.Each(func(id string, m *rules.ImageMatch) {
			if !m.Matched {
				t.Logf("unmatched expectation %s: %s", id, m.Analysis.Reason)
			}
		})
		t.Fatalf("status = %s, want passed", result.Status)
	}

	summary := result.Payload.Summary
	if summary.TotalChecks != result.Checklist.Len() || summary.ChecksPassed != summary.TotalChecks {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.References != 4 || summary.ReferencesMatched != 4 {
		t.Fatalf("unexpected reference counts: %+v", summary)
	}
	if stat := summary.CategoryBreakdown["checklist"]; stat == nil || stat.Total != 8 || stat.Passed != 8 {
		t.Fatalf("unexpected checklist breakdown: %+v", stat)
	}

	if first := result.Logs[0]; !strings.HasPrefix(first, "Starting analysis for ") {
		t.Fatalf("unexpected first log line: %q", first)
	}
	if last := result.Logs[len(result.Logs)-1]; last != "Analysis completed with status: PASSED" {
		t.Fatalf("unexpected final log line: %q", last)
	}
}

func TestAnalyzeSingleFailureFlipsStatus(t *testing.T) {
	withoutCredentials := make([]string, 0, len(compliantLines)-1)
	for _, line := range compliantLines {
		if strings.HasPrefix(line, "Login credentials") {
			continue
		}
		withoutCredentials = append(withoutCredentials, line)
	}
	path := writeDocx(t, withoutCredentials, map[string][]byte{
		"word/media/screenshot.png": pngBytes(t),
	})
	analyzer := audit.New(audit.WithOCREngine(stubEngine{text: screenshotText}))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Status != audit.StatusFailed {
		t.Fatalf("status = %s, want failed when one rule fails", result.Status)
	}
	ev, _ := result.Checklist.Get("check_04_login_credentials")
	if ev.Passed {
		t.Fatalf("expected check_04_login_credentials to fail")
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	path := writeDocx(t, compliantLines, map[string][]byte{
		"word/media/screenshot.png": pngBytes(t),
	})
	analyzer := audit.New(audit.WithOCREngine(stubEngine{text: screenshotText}))

	first, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("first Analyze() error = %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("second Analyze() error = %v", err)
	}

	a, err := first.Payload.JSON()
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := second.Payload.JSON()
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("payloads differ between identical runs")
	}
}

func TestAnalyzePayloadJSONKeepsURLsVerbatim(t *testing.T) {
	path := writeDocx(t, compliantLines, nil)
	analyzer := audit.New(audit.WithOCREngine(nil))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	data, err := result.Payload.JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !bytes.Contains(data, []byte("api.razorpay.com/v1/checkout/embedded")) {
		t.Fatalf("URL keyword not serialized verbatim")
	}
	if bytes.Contains(data, []byte(`\u0026`)) {
		t.Fatalf("unexpected HTML escaping in payload")
	}
}

func TestAnalyzeImageFallback(t *testing.T) {
	catalog := &rules.Catalog{
		ImageExpectations: []rules.ImageTextExpectation{{
			ID:               "visual_success",
			Label:            "Success screen present",
			Description:      "Evidence of a successful payment.",
			KeywordsAny:      []string{"payment successful"},
			ThresholdAny:     70,
			DocumentFallback: true,
			Category:         "visual",
		}},
	}
	path := writeDocx(t, []string{"The payment successful screen is presented to the customer."}, nil)
	analyzer := audit.New(audit.WithCatalog(catalog), audit.WithOCREngine(nil))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	m, _ := result.Images.Get("visual_success")
	if !m.Matched {
		t.Fatalf("expected fallback match, reason=%q", m.Analysis.Reason)
	}
	if len(m.Analysis.Evidence) != 0 {
		t.Fatalf("fallback match must not carry evidence")
	}
	if !strings.Contains(m.Analysis.Note, "fallback") {
		t.Fatalf("expected fallback note, got %q", m.Analysis.Note)
	}
	if result.Status != audit.StatusPassed {
		t.Fatalf("status = %s, want passed", result.Status)
	}
}

func TestAnalyzeDefaultsWithoutRegisteredEngine(t *testing.T) {
	// No OCR provider is linked into this test binary, so the process-wide
	// capability resolves absent and image checks degrade instead of failing.
	path := writeDocx(t, []string{"body"}, map[string][]byte{
		"word/media/screenshot.png": pngBytes(t),
	})

	result, err := audit.New().Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	m, _ := result.Images.Get("visual_logo")
	if m.Matched {
		t.Fatalf("expected no match without a registered engine")
	}
	if m.Analysis.Reason != "OCR unavailable (install Tesseract)" {
		t.Fatalf("reason = %q", m.Analysis.Reason)
	}
}

func TestAnalyzeOCRUnavailableReason(t *testing.T) {
	path := writeDocx(t, []string{"body"}, map[string][]byte{
		"word/media/screenshot.png": pngBytes(t),
	})
	analyzer := audit.New(audit.WithOCREngine(nil))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	m, _ := result.Images.Get("visual_logo")
	if m.Matched {
		t.Fatalf("expected no match without OCR")
	}
	if m.Analysis.Reason != "OCR unavailable (install Tesseract)" {
		t.Fatalf("reason = %q", m.Analysis.Reason)
	}
	logged := strings.Join(result.Logs, "\n")
	if !strings.Contains(logged, "unable to OCR DOCX asset word/media/screenshot.png") {
		t.Fatalf("missing OCR degradation log: %q", logged)
	}
}

func TestAnalyzeOCRFailureDegrades(t *testing.T) {
	path := writeDocx(t, []string{"body"}, map[string][]byte{
		"word/media/screenshot.png": pngBytes(t),
	})
	analyzer := audit.New(audit.WithOCREngine(stubEngine{err: errors.New("engine crashed")}))

	result, err := analyzer.Analyze(context.Background(), path, "")
	if err != nil {
		t.Fatalf("Analyze() must not fail on OCR errors, got %v", err)
	}
	logged := strings.Join(result.Logs, "\n")
	if !strings.Contains(logged, "OCR failed for DOCX asset word/media/screenshot.png: engine crashed") {
		t.Fatalf("missing OCR failure log: %q", logged)
	}
	if !strings.Contains(logged, "Images detected but no OCR text produced") {
		t.Fatalf("missing no-text log: %q", logged)
	}
}

func TestAnalyzeUnsupportedExtension(t *testing.T) {
	analyzer := audit.New(audit.WithOCREngine(nil))
	result, err := analyzer.Analyze(context.Background(), "slides.pptx", "")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Status != audit.StatusFailed {
		t.Fatalf("status = %s, want failed for empty extraction", result.Status)
	}
	if !strings.Contains(strings.Join(result.Logs, "\n"), "Unsupported file type") {
		t.Fatalf("missing unsupported-type log")
	}
}

func TestAnalyzeUnreadableFile(t *testing.T) {
	analyzer := audit.New(audit.WithOCREngine(nil))
	if _, err := analyzer.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.docx"), ""); err == nil {
		t.Fatalf("expected error for unreadable file")
	}
}

func TestIsAllowedFile(t *testing.T) {
	cases := map[string]bool{
		"report.pdf":  true,
		"REPORT.DOCX": true,
		"legacy.doc":  true,
		"notes.txt":   false,
		"archive":     false,
	}
	for name, want := range cases {
		if got := audit.IsAllowedFile(name); got != want {
			t.Fatalf("IsAllowedFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMimeType(t *testing.T) {
	if got := audit.MimeType("report.pdf"); got != "application/pdf" {
		t.Fatalf("MimeType(report.pdf) = %q", got)
	}
	if got := audit.MimeType("mystery.bin2"); got != "application/octet-stream" {
		t.Fatalf("MimeType fallback = %q", got)
	}
}
