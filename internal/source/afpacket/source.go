// Package afpacket reads live frames from a Linux AF_PACKET ring.
package afpacket

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/gopacket/afpacket"

	"firestige.xyz/nubble/internal/core"
	"firestige.xyz/nubble/internal/log"
)

const Name = "afpacket"

// Config configures an AF_PACKET capture.
type Config struct {
	Interface    string
	SnapLen      int
	BufferSizeMB int
	// PollTimeout bounds each blocking poll so context cancellation is
	// noticed; timeouts are retried, never reported.
	PollTimeout time.Duration
	// AddVLANHeader re-inserts VLAN tags stripped by NIC offload.
	AddVLANHeader bool
}

// Source is a core.FrameSource backed by a TPACKET_V3 ring.
type Source struct {
	handle *afpacket.TPacket
	iface  string
	now    func() time.Time
}

// NewSource opens a raw socket on cfg.Interface.
func NewSource(cfg Config) (*Source, error) {
	layout, err := computeRingLayout(cfg.BufferSizeMB, cfg.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, fmt.Errorf("afpacket ring for %s: %w", cfg.Interface, err)
	}

	tp, err := afpacket.NewTPacket(
		afpacket.OptInterface(cfg.Interface),
		afpacket.OptFrameSize(layout.frameSize),
		afpacket.OptBlockSize(layout.blockSize),
		afpacket.OptNumBlocks(layout.numBlocks),
		afpacket.OptPollTimeout(cfg.PollTimeout),
		afpacket.OptAddVLANHeader(cfg.AddVLANHeader),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	)
	if err != nil {
		return nil, fmt.Errorf("open afpacket on %s: %w", cfg.Interface, err)
	}

	log.GetLogger().WithFields(map[string]interface{}{
		"interface":  cfg.Interface,
		"frame_size": layout.frameSize,
		"block_size": layout.blockSize,
		"num_blocks": layout.numBlocks,
	}).Debug("afpacket handle opened")

	return &Source{handle: tp, iface: cfg.Interface, now: time.Now}, nil
}

// ReadFrame returns the next frame. The returned Data points into the ring
// and is overwritten by the next call.
func (s *Source) ReadFrame(ctx context.Context) (core.RawFrame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return core.RawFrame{}, err
		}
		if s.handle == nil {
			return core.RawFrame{}, core.ErrSourceClosed
		}

		data, ci, err := s.handle.ZeroCopyReadPacketData()
		if err == afpacket.ErrTimeout {
			continue
		}
		if err != nil {
			return core.RawFrame{}, fmt.Errorf("read from %s: %w", s.iface, err)
		}

		ts := ci.Timestamp
		if ts.IsZero() {
			ts = s.now()
		}
		return core.RawFrame{
			Data:           data,
			Timestamp:      ts,
			CaptureLen:     uint32(ci.CaptureLength),
			OrigLen:        uint32(ci.Length),
			InterfaceIndex: ci.InterfaceIndex,
		}, nil
	}
}

// Close releases the ring.
func (s *Source) Close() error {
	if s.handle != nil {
		s.handle.Close()
		log.GetLogger().WithField("interface", s.iface).Debug("afpacket handle closed")
		s.handle = nil
	}
	return nil
}
