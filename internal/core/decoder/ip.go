// Package decoder implements protocol decoding.
package decoder

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"firestige.xyz/nubble/internal/core"
)

const (
	ipv4HeaderMinLen = 20
	ipv6HeaderLen    = 40
)

// decodeIPv4 decodes IPv4 header.
// The returned payload ends at Total Length, clamped to the captured bytes.
func decodeIPv4(data []byte) (core.IPHeader, []byte, error) {
	if len(data) < ipv4HeaderMinLen {
		return core.IPHeader{}, nil, fmt.Errorf("ipv4 %d bytes: %w", len(data), core.ErrHeaderTooShort)
	}

	// IHL is in 32-bit words
	headerLen := int(data[0]&0x0F) * 4
	if headerLen < ipv4HeaderMinLen || len(data) < headerLen {
		return core.IPHeader{}, nil, fmt.Errorf("ipv4 ihl %d for %d bytes: %w", headerLen, len(data), core.ErrHeaderTooShort)
	}

	ip := core.IPHeader{
		Version:  4,
		Length:   binary.BigEndian.Uint16(data[2:4]),
		TTL:      data[8],
		Protocol: data[9],
		SrcIP:    netip.AddrFrom4([4]byte(data[12:16])),
		DstIP:    netip.AddrFrom4([4]byte(data[16:20])),
	}

	end := clamp(int(ip.Length), headerLen, len(data))
	return ip, data[headerLen:end], nil
}

// decodeIPv6 decodes the fixed IPv6 header. Extension headers are left in
// the payload.
func decodeIPv6(data []byte) (core.IPHeader, []byte, error) {
	if len(data) < ipv6HeaderLen {
		return core.IPHeader{}, nil, fmt.Errorf("ipv6 %d bytes: %w", len(data), core.ErrHeaderTooShort)
	}

	ip := core.IPHeader{
		Version:  6,
		Length:   binary.BigEndian.Uint16(data[4:6]),
		Protocol: data[6],
		TTL:      data[7],
		SrcIP:    netip.AddrFrom16([16]byte(data[8:24])),
		DstIP:    netip.AddrFrom16([16]byte(data[24:40])),
	}

	end := clamp(ipv6HeaderLen+int(ip.Length), ipv6HeaderLen, len(data))
	return ip, data[ipv6HeaderLen:end], nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
