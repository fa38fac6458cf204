package extract

import (
	"fmt"
	"os/exec"

	"github.com/wudi/docaudit/observability"
)

// Converter is the optional capability that turns a legacy .doc file into
// plain text. Absence is a normal, logged state, not an error.
type Converter interface {
	// Available reports whether the capability can be used at all.
	Available() bool
	// Convert returns the plain-text rendition of the document at path.
	Convert(path string) (string, error)
}

// ExecConverter shells out to the first legacy-doc tool found on PATH.
type ExecConverter struct {
	tool string
}

// converterTools lists known converters in preference order. Both print the
// extracted text on stdout.
var converterTools = []string{"antiword", "catdoc"}

// NewExecConverter probes PATH once for a known converter.
func NewExecConverter() *ExecConverter {
	for _, tool := range converterTools {
		if _, err := exec.LookPath(tool); err == nil {
			return &ExecConverter{tool: tool}
		}
	}
	return &ExecConverter{}
}

func (c *ExecConverter) Available() bool { return c.tool != "" }

func (c *ExecConverter) Convert(path string) (string, error) {
	if c.tool == "" {
		return "", fmt.Errorf("no legacy .doc converter installed")
	}
	out, err := exec.Command(c.tool, path).Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", c.tool, path, err)
	}
	return string(out), nil
}

// docTextLines degrades to an empty extraction when the converter capability
// is missing or the external tool fails.
func docTextLines(path string, conv Converter, trail *observability.Trail) []string {
	if conv == nil || !conv.Available() {
		trail.Add("Legacy .doc converter missing; unable to parse legacy .doc document")
		return nil
	}
	text, err := conv.Convert(path)
	if err != nil {
		trail.Addf("Failed to extract text from .doc: %v", err)
		return nil
	}
	lines := splitLines(text)
	for _, line := range lines {
		trail.Addf("[DOC] %s", line)
	}
	return lines
}
