// Package pipeline drives frames from a source through the decoder to a sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"firestige.xyz/nubble/internal/core"
	"firestige.xyz/nubble/internal/core/decoder"
	"firestige.xyz/nubble/internal/log"
)

// Sink consumes decoded frames in arrival order.
type Sink interface {
	Send(frame core.DecodedFrame) error
}

// Pipeline is a single-threaded read, decode, print loop.
type Pipeline struct {
	source  core.FrameSource
	decoder decoder.Decoder
	sink    Sink
	metrics *Metrics
}

// Config contains pipeline configuration.
type Config struct {
	Source  core.FrameSource
	Decoder decoder.Decoder
	Sink    Sink
}

// New creates a new pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Decoder == nil {
		cfg.Decoder = decoder.NewStandardDecoder(decoder.Config{})
	}
	return &Pipeline{
		source:  cfg.Source,
		decoder: cfg.Decoder,
		sink:    cfg.Sink,
		metrics: &Metrics{},
	}
}

// Run processes frames until the source is exhausted, ctx is cancelled or
// the source or sink fails. A frame is fully written before the next one is
// read. Run does not close the source.
func (p *Pipeline) Run(ctx context.Context) error {
	logger := log.GetLogger()
	logger.Debug("pipeline starting")
	defer func() {
		s := p.Stats()
		logger.WithFields(map[string]interface{}{
			"received":      s.Received,
			"decode_errors": s.DecodeErrors,
			"printed":       s.Printed,
		}).Debug("pipeline stopped")
	}()

	for {
		raw, err := p.source.ReadFrame(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("frame source: %w", err)
		}
		p.metrics.Received.Add(1)

		if err := p.processFrame(raw); err != nil {
			return err
		}
	}
}

func (p *Pipeline) processFrame(raw core.RawFrame) error {
	frame := p.decoder.Decode(raw)
	if frame.Err != nil {
		p.metrics.DecodeErrors.Add(1)
		if logger := log.GetLogger(); logger.IsDebugEnabled() {
			logger.WithError(frame.Err).WithField("len", frame.FrameLen).Debug("frame decoded partially")
		}
	}

	if err := p.sink.Send(frame); err != nil {
		return fmt.Errorf("print frame: %w", err)
	}
	p.metrics.Printed.Add(1)
	return nil
}

// Stats returns pipeline statistics.
func (p *Pipeline) Stats() Stats {
	return Stats{
		Received:     p.metrics.Received.Load(),
		DecodeErrors: p.metrics.DecodeErrors.Load(),
		Printed:      p.metrics.Printed.Load(),
	}
}

// Stats is a snapshot of the pipeline counters.
type Stats struct {
	Received     uint64
	DecodeErrors uint64
	Printed      uint64
}
