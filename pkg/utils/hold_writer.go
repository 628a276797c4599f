package utils

import (
	"bytes"
	"io"
	"sync"
)

// HoldWriter passes writes through to its target until Hold is called, then
// buffers them in memory until Release. A full screen program holds the
// writer while it owns the terminal so log output does not corrupt it.
// Safe for concurrent use.
type HoldWriter struct {
	mu     sync.Mutex
	target io.Writer
	held   bool
	buf    bytes.Buffer
}

// NewHoldWriter creates a HoldWriter writing to target.
func NewHoldWriter(target io.Writer) *HoldWriter {
	return &HoldWriter{target: target}
}

// Write writes p to the target, or to the buffer while held.
func (h *HoldWriter) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.held {
		return h.buf.Write(p)
	}
	return h.target.Write(p)
}

// Hold starts buffering writes.
func (h *HoldWriter) Hold() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held = true
}

// Release writes everything buffered since Hold to the target and resumes
// passing writes through.
func (h *HoldWriter) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.held = false
	if h.buf.Len() == 0 {
		return nil
	}

	_, err := h.buf.WriteTo(h.target)
	return err
}

// Buffered returns the number of bytes waiting for Release.
func (h *HoldWriter) Buffered() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.Len()
}
