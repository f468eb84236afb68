package decoder

import (
	"encoding/binary"
	"fmt"
	"net/netip"

	"firestige.xyz/nubble/internal/core"
)

// Ethernet/IPv4 ARP: 8 bytes fixed + 2*(6+4) addresses.
const arpHeaderLen = 28

// decodeARP decodes an Ethernet/IPv4 ARP packet. ARP carries no payload:
// bytes past the fixed header are link padding and count only towards
// Length, so the returned payload is always empty.
func decodeARP(data []byte) (core.ARPHeader, []byte, error) {
	if len(data) < arpHeaderLen {
		return core.ARPHeader{}, nil, fmt.Errorf("arp %d bytes: %w", len(data), core.ErrHeaderTooShort)
	}

	arp := core.ARPHeader{
		Operation: binary.BigEndian.Uint16(data[6:8]),
		SenderIP:  netip.AddrFrom4([4]byte(data[14:18])),
		TargetIP:  netip.AddrFrom4([4]byte(data[24:28])),
		Length:    len(data),
	}
	copy(arp.SenderMAC[:], data[8:14])
	copy(arp.TargetMAC[:], data[18:24])

	return arp, data[arpHeaderLen:arpHeaderLen], nil
}
