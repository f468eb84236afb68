// Package console prints decoded frames as text.
package console

import (
	"bufio"
	"io"

	"firestige.xyz/nubble/internal/core"
)

const Name = "console"

// Sink writes one Record per frame and flushes after each, so output
// interleaves correctly with the capture even when stdout is a pipe.
type Sink struct {
	w *bufio.Writer
}

// NewSink creates a Sink writing to w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: bufio.NewWriter(w)}
}

// Send formats f and writes it.
func (s *Sink) Send(f core.DecodedFrame) error {
	rec := Format(f)

	s.w.WriteString(rec.Line)
	s.w.WriteByte('\n')
	if rec.HasDump {
		s.w.WriteString(rec.Hex)
		s.w.WriteByte('\n')
		s.w.WriteString(rec.ASCII)
		s.w.WriteByte('\n')
	}
	return s.w.Flush()
}

// Close flushes any buffered output.
func (s *Sink) Close() error {
	return s.w.Flush()
}
