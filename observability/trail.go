package observability

import "fmt"

// Trail records the ordered, human-readable audit lines that accompany an
// analysis result. Every line is also forwarded to the wrapped Logger so hosts
// see pipeline events as they happen. A Trail belongs to a single analysis
// invocation and is not safe for concurrent use.
type Trail struct {
	logger Logger
	lines  []string
}

// NewTrail returns a Trail forwarding to logger; a nil logger records only.
func NewTrail(logger Logger) *Trail {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Trail{logger: logger}
}

// Add appends a line to the trail.
func (t *Trail) Add(line string) {
	t.lines = append(t.lines, line)
	t.logger.Debug(line)
}

// Addf appends a formatted line to the trail.
func (t *Trail) Addf(format string, args ...interface{}) {
	t.Add(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the recorded lines in insertion order.
func (t *Trail) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// Len reports the number of recorded lines.
func (t *Trail) Len() int { return len(t.lines) }
