package ocr

// Package ocr defines the abstraction layer for plugging OCR engines into the
// document analysis pipeline. The interface is intentionally small and
// transport-agnostic so engines can be backed by local binaries, native
// libraries, or stubs in tests without leaking provider-specific concerns
// into callers. The default engine is resolved at most once per process;
// absence is a normal, cached state rather than an error.
