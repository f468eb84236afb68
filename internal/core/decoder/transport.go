// Package decoder implements protocol decoding.
package decoder

import (
	"encoding/binary"
	"fmt"

	"firestige.xyz/nubble/internal/core"
)

const (
	udpHeaderLen    = 8
	tcpHeaderMinLen = 20
)

// decodeTransport decodes transport layer header (TCP/UDP).
// Returns TransportHeader and remaining payload. Protocols without ports
// return core.ErrUnsupportedProto.
func decodeTransport(data []byte, protocol uint8) (core.TransportHeader, []byte, error) {
	switch protocol {
	case core.ProtocolTCP:
		return decodeTCP(data)
	case core.ProtocolUDP:
		return decodeUDP(data)
	default:
		return core.TransportHeader{Protocol: protocol}, data, core.ErrUnsupportedProto
	}
}

// decodeUDP decodes UDP header.
func decodeUDP(data []byte) (core.TransportHeader, []byte, error) {
	if len(data) < udpHeaderLen {
		return core.TransportHeader{}, nil, fmt.Errorf("udp %d bytes: %w", len(data), core.ErrHeaderTooShort)
	}

	transport := core.TransportHeader{
		Protocol: core.ProtocolUDP,
		SrcPort:  binary.BigEndian.Uint16(data[0:2]),
		DstPort:  binary.BigEndian.Uint16(data[2:4]),
	}

	return transport, data[udpHeaderLen:], nil
}

// decodeTCP decodes TCP header.
// Fields come from the fixed 20 bytes; a bogus data offset only affects
// where the payload starts.
func decodeTCP(data []byte) (core.TransportHeader, []byte, error) {
	if len(data) < tcpHeaderMinLen {
		return core.TransportHeader{}, nil, fmt.Errorf("tcp %d bytes: %w", len(data), core.ErrHeaderTooShort)
	}

	transport := core.TransportHeader{
		Protocol: core.ProtocolTCP,
		SrcPort:  binary.BigEndian.Uint16(data[0:2]),
		DstPort:  binary.BigEndian.Uint16(data[2:4]),
		SeqNum:   binary.BigEndian.Uint32(data[4:8]),
		AckNum:   binary.BigEndian.Uint32(data[8:12]),
		// Byte 13: CWR ECE URG ACK PSH RST SYN FIN
		TCPFlags: data[13],
	}

	// Data offset is in 32-bit words
	headerLen := clamp(int(data[12]>>4)*4, tcpHeaderMinLen, len(data))
	return transport, data[headerLen:], nil
}
