// Package extract pulls text lines and embedded images out of compliance
// documents. Dispatch is strictly by file extension; an unsupported extension
// is a logged, empty extraction rather than an error. Every extracted line is
// trimmed, blank lines are dropped, and each extraction event is recorded on
// the trail with its provenance (page, paragraph, or archive path).
package extract

import (
	"path/filepath"
	"strings"

	"github.com/wudi/docaudit/observability"
)

// Image is an embedded raster image lifted out of a document. Data holds the
// encoded bytes; Origin is a human-readable provenance label. Ownership is
// transient: callers release the image immediately after OCR is attempted.
type Image struct {
	Data   []byte
	Format string
	Origin string
}

// Release drops the image payload. Safe to call more than once.
func (img *Image) Release() {
	img.Data = nil
}

// Released reports whether the payload has been dropped.
func (img *Image) Released() bool { return img.Data == nil }

// TextLines extracts the ordered non-empty text lines of the document at
// path. Only unreadable or unparseable input for a supported kind returns an
// error; everything else degrades to an empty result with a trail entry.
func TextLines(path string, conv Converter, trail *observability.Trail) ([]string, error) {
	switch ext(path) {
	case ".pdf":
		return pdfTextLines(path, trail)
	case ".docx":
		return docxTextLines(path, trail)
	case ".doc":
		return docTextLines(path, conv, trail), nil
	default:
		trail.Addf("Unsupported file type for text extraction: %s", ext(path))
		return nil, nil
	}
}

// Images extracts embedded raster images with origin labels. Extraction
// failures are logged and skipped; Images never fails the analysis.
func Images(path string, trail *observability.Trail) []*Image {
	switch ext(path) {
	case ".pdf":
		return pdfImages(path, trail)
	case ".docx":
		return docxImages(path, trail)
	case ".doc":
		trail.Add("Binary .doc image extraction not supported; skipping visual validation")
		return nil
	default:
		return nil
	}
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// splitLines trims raw text into ordered non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
