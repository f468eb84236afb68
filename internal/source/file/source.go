// Package file replays frames from a pcap or pcapng capture file.
package file

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"firestige.xyz/nubble/internal/core"
	"firestige.xyz/nubble/internal/log"
)

const Name = "file"

// pcapng section header block type, identical in either byte order.
var ngMagic = []byte{0x0a, 0x0d, 0x0d, 0x0a}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Source is a core.FrameSource that reads a capture file once and then
// returns io.EOF.
type Source struct {
	path   string
	f      *os.File
	reader packetReader
}

// NewSource opens path and checks that it holds Ethernet frames.
func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("file_path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file %s: %w", path, err)
	}

	r, err := newPacketReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read capture file %s: %w", path, err)
	}
	if lt := r.LinkType(); lt != layers.LinkTypeEthernet {
		f.Close()
		return nil, fmt.Errorf("capture file %s: unsupported link type %s", path, lt)
	}

	log.GetLogger().WithField("path", path).Debug("capture file opened")
	return &Source{path: path, f: f, reader: r}, nil
}

func newPacketReader(br *bufio.Reader) (packetReader, error) {
	magic, err := br.Peek(len(ngMagic))
	if err != nil {
		return nil, err
	}
	if bytes.Equal(magic, ngMagic) {
		return pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	}
	return pcapgo.NewReader(br)
}

// ReadFrame returns the next frame from the file, or io.EOF once the file
// is exhausted.
func (s *Source) ReadFrame(ctx context.Context) (core.RawFrame, error) {
	if err := ctx.Err(); err != nil {
		return core.RawFrame{}, err
	}
	if s.reader == nil {
		return core.RawFrame{}, core.ErrSourceClosed
	}

	data, ci, err := s.reader.ReadPacketData()
	if errors.Is(err, io.EOF) {
		return core.RawFrame{}, io.EOF
	}
	if err != nil {
		return core.RawFrame{}, fmt.Errorf("failed to read packet from %s: %w", s.path, err)
	}

	return core.RawFrame{
		Data:           data,
		Timestamp:      ci.Timestamp,
		CaptureLen:     uint32(ci.CaptureLength),
		OrigLen:        uint32(ci.Length),
		InterfaceIndex: ci.InterfaceIndex,
	}, nil
}

func (s *Source) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	s.reader = nil
	return err
}
