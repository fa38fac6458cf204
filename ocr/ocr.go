package ocr

import (
	"context"
	"sync"

	"github.com/wudi/docaudit/extract"
)

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Input encapsulates a single image submitted for OCR.
type Input struct {
	// ID is an optional caller-provided identifier that is echoed back in the
	// corresponding Result.
	ID string
	// Image is the encoded image payload.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// Languages is a list of language hints (e.g., "eng") that providers can
	// use to select trained data.
	Languages []string
	// Metadata allows callers to pass through engine-specific knobs (e.g.,
	// "tessedit_pageseg_mode") without hard-coding them into the API surface.
	Metadata map[string]string
}

// Result captures OCR output for a single input image.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// PlainText contains the linearized text extracted from the image.
	PlainText string
}

// Engine is the OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// InputOption mutates an OCR input before submission.
type InputOption func(*Input)

// WithLanguages sets language hints on the OCR input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// InputFromImage converts an extracted document image into an OCR input. The
// ID echoes the image origin so results correlate with extraction provenance.
func InputFromImage(img *extract.Image, opts ...InputOption) Input {
	in := Input{
		ID:     img.Origin,
		Image:  img.Data,
		Format: formatFor(img.Format),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

func formatFor(format string) ImageFormat {
	switch format {
	case "jpeg", "jpg":
		return ImageFormatJPEG
	case "tiff", "tif":
		return ImageFormatTIFF
	default:
		return ImageFormatPNG
	}
}

// Factory builds the process default engine. Provider packages register one
// from init; the probe runs lazily on first Resolve.
type Factory func() (Engine, error)

var (
	factoryMu sync.Mutex
	factory   Factory

	resolveOnce sync.Once
	resolved    Engine
)

// RegisterFactory installs the default engine factory. Later registrations
// win until the first Resolve; afterwards the cached outcome is final.
func RegisterFactory(f Factory) {
	factoryMu.Lock()
	factory = f
	factoryMu.Unlock()
}

// Resolve probes the default engine at most once per process and caches the
// outcome, present or absent. Redundant calls are idempotent and cheap.
func Resolve() (Engine, bool) {
	resolveOnce.Do(func() {
		factoryMu.Lock()
		f := factory
		factoryMu.Unlock()
		if f == nil {
			return
		}
		engine, err := f()
		if err != nil {
			return
		}
		resolved = engine
	})
	return resolved, resolved != nil
}
