package cmd

import (
	"context"
	"fmt"
	"io"

	"firestige.xyz/nubble/internal/config"
	"firestige.xyz/nubble/internal/core"
	"firestige.xyz/nubble/internal/core/decoder"
	"firestige.xyz/nubble/internal/log"
	"firestige.xyz/nubble/internal/pipeline"
	"firestige.xyz/nubble/internal/sink/console"
	"firestige.xyz/nubble/internal/source/afpacket"
	"firestige.xyz/nubble/internal/source/file"
	"firestige.xyz/nubble/internal/source/iface"
)

// Frame source constructors, replaced in tests.
var (
	lookupInterface = iface.Lookup
	openLive        = func(cfg afpacket.Config) (core.FrameSource, error) { return afpacket.NewSource(cfg) }
	openFile        = func(path string) (core.FrameSource, error) { return file.NewSource(path) }
)

// runCapture prints every frame from the configured source to out until
// the source ends or ctx is cancelled. A capture file takes precedence over
// an interface.
func runCapture(ctx context.Context, cfg *config.GlobalConfig, out io.Writer) error {
	src, name, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	log.GetLogger().WithField("source", name).Info("capture started")

	sink := console.NewSink(out)
	defer sink.Close()

	p := pipeline.NewBuilder().
		WithSource(src).
		WithDecoder(decoder.NewStandardDecoder(decoder.Config{UnwrapVLAN: cfg.Decoder.UnwrapVLAN})).
		WithSink(sink).
		Build()

	if err := p.Run(ctx); err != nil {
		return err
	}
	log.GetLogger().WithField("frames", p.Stats().Received).Info("capture finished")
	return nil
}

func openSource(cfg *config.GlobalConfig) (core.FrameSource, string, error) {
	if path := cfg.Capture.ReadFile; path != "" {
		src, err := openFile(path)
		if err != nil {
			return nil, "", err
		}
		return src, file.Name + ":" + path, nil
	}

	link, err := lookupInterface(cfg.Capture.Interface)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get interface: %w", err)
	}
	src, err := openLive(afpacket.Config{
		Interface:     link.Name,
		SnapLen:       cfg.Capture.SnapLen,
		BufferSizeMB:  cfg.Capture.BufferSizeMB,
		PollTimeout:   cfg.Capture.PollTimeout,
		AddVLANHeader: cfg.Decoder.UnwrapVLAN,
	})
	if err != nil {
		return nil, "", err
	}
	return src, afpacket.Name + ":" + link.Name, nil
}
