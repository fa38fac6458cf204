package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTrailOrderAndCopy(t *testing.T) {
	trail := NewTrail(nil)
	trail.Add("first")
	trail.Addf("second %d", 2)

	lines := trail.Lines()
	if len(lines) != 2 || lines[0] != "first" || lines[1] != "second 2" {
		t.Fatalf("unexpected lines: %v", lines)
	}

	lines[0] = "mutated"
	if trail.Lines()[0] != "first" {
		t.Fatalf("Lines() must return a copy")
	}
	if trail.Len() != 2 {
		t.Fatalf("unexpected length: %d", trail.Len())
	}
}

func TestTrailForwardsToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	trail := NewTrail(NewSlogLogger(logger))
	trail.Add("extraction started")

	if !strings.Contains(buf.String(), "extraction started") {
		t.Fatalf("expected forwarded log line, got %q", buf.String())
	}
}

func TestSlogLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	child := logger.With(String("file", "report.pdf"), Int("lines", 3), Bool("ocr", true))
	child.Info("done")

	out := buf.String()
	for _, want := range []string{"file=report.pdf", "lines=3", "ocr=true", "done"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output: %q", want, out)
		}
	}
}
