// Package core defines core data structures with zero external dependencies.
package core

import (
	"context"
	"time"
)

// RawFrame is read from a FrameSource. Data is only valid until the next read.
type RawFrame struct {
	Data           []byte    // Raw frame data, zero-copy slice
	Timestamp      time.Time // Capture timestamp (kernel timestamp preferred)
	CaptureLen     uint32    // Actual captured length
	OrigLen        uint32    // Original frame length
	InterfaceIndex int       // Network interface index
}

// DecodedFrame is the result of L2-L4 decoding of a single RawFrame.
//
// Class tells which of IP or ARP is populated. HasTransport is set only when
// the IP payload carried a complete TCP or UDP header. Payload is the
// network-layer payload (IP payload, or the bytes after the ARP header) and
// always aliases the RawFrame buffer.
type DecodedFrame struct {
	Timestamp    time.Time
	FrameLen     int
	Class        NetworkClass
	Ethernet     EthernetHeader
	IP           IPHeader
	ARP          ARPHeader
	Transport    TransportHeader
	HasTransport bool
	Payload      []byte
	// Err records the layer that was skipped, if any.
	Err error
}

// FrameSource supplies raw link-layer frames one at a time.
type FrameSource interface {
	// ReadFrame blocks until a frame is available. Any error other than
	// context cancellation or io.EOF is fatal to the caller.
	ReadFrame(ctx context.Context) (RawFrame, error)
	Close() error
}
