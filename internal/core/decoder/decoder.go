// Package decoder implements L2-L4 protocol stack decoding.
package decoder

import (
	"errors"
	"fmt"

	"firestige.xyz/nubble/internal/core"
)

// Decoder decodes raw frames into structured format.
//
// Decode never fails as a whole: a layer that cannot be decoded is skipped,
// the frame keeps whatever was decoded below it and DecodedFrame.Err says why.
type Decoder interface {
	Decode(raw core.RawFrame) core.DecodedFrame
}

// Config controls optional decoding behaviour.
type Config struct {
	// UnwrapVLAN strips 802.1Q/802.1ad tags before classifying the frame.
	UnwrapVLAN bool
}

// StandardDecoder decodes Ethernet, ARP, IPv4, IPv6, TCP and UDP.
// It keeps no state between frames.
type StandardDecoder struct {
	cfg Config
}

// NewStandardDecoder creates a StandardDecoder.
func NewStandardDecoder(cfg Config) *StandardDecoder {
	return &StandardDecoder{cfg: cfg}
}

// Decode implements Decoder.
func (d *StandardDecoder) Decode(raw core.RawFrame) core.DecodedFrame {
	out := core.DecodedFrame{
		Timestamp: raw.Timestamp,
		FrameLen:  len(raw.Data),
	}

	eth, payload, err := decodeEthernet(raw.Data, d.cfg.UnwrapVLAN)
	if err != nil {
		out.Err = fmt.Errorf("ethernet: %w", err)
		return out
	}
	out.Ethernet = eth

	switch eth.EtherType {
	case etherTypeIPv4:
		ip, ipPayload, err := decodeIPv4(payload)
		if err != nil {
			out.Err = err
			return out
		}
		out.Class, out.IP, out.Payload = core.ClassIPv4, ip, ipPayload
		d.decodeTransport(&out)

	case etherTypeIPv6:
		ip, ipPayload, err := decodeIPv6(payload)
		if err != nil {
			out.Err = err
			return out
		}
		out.Class, out.IP, out.Payload = core.ClassIPv6, ip, ipPayload
		d.decodeTransport(&out)

	case etherTypeARP:
		arp, arpPayload, err := decodeARP(payload)
		if err != nil {
			out.Err = err
			return out
		}
		out.Class, out.ARP, out.Payload = core.ClassARP, arp, arpPayload

	default:
		out.Err = fmt.Errorf("ethertype 0x%04x: %w", eth.EtherType, core.ErrUnsupportedProto)
	}

	return out
}

// decodeTransport fills the transport header from the IP payload. Missing or
// truncated transport headers leave HasTransport unset.
func (d *StandardDecoder) decodeTransport(out *core.DecodedFrame) {
	th, _, err := decodeTransport(out.Payload, out.IP.Protocol)
	switch {
	case err == nil:
		out.Transport, out.HasTransport = th, true
	case errors.Is(err, core.ErrUnsupportedProto):
		// no ports to report
	default:
		out.Err = err
	}
}
