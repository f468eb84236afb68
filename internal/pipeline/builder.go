package pipeline

import (
	"firestige.xyz/nubble/internal/core"
	"firestige.xyz/nubble/internal/core/decoder"
)

// Builder provides a fluent interface for building pipelines.
type Builder struct {
	config Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithSource(s core.FrameSource) *Builder {
	b.config.Source = s
	return b
}

func (b *Builder) WithDecoder(d decoder.Decoder) *Builder {
	b.config.Decoder = d
	return b
}

func (b *Builder) WithSink(s Sink) *Builder {
	b.config.Sink = s
	return b
}

// Build creates the pipeline.
func (b *Builder) Build() *Pipeline {
	return New(b.config)
}
