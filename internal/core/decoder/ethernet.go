// Package decoder implements protocol decoding.
package decoder

import (
	"encoding/binary"
	"fmt"

	"firestige.xyz/nubble/internal/core"
)

const (
	// Ethernet constants
	ethernetHeaderLen = 14
	vlanHeaderLen     = 4

	// EtherType values
	etherTypeIPv4 = 0x0800
	etherTypeARP  = 0x0806
	etherTypeIPv6 = 0x86DD
	etherTypeVLAN = 0x8100
	etherTypeQinQ = 0x88A8
)

// decodeEthernet decodes Ethernet frame header. When unwrapVLAN is set,
// 802.1Q/802.1ad tags are stripped and EtherType is the inner one.
// Returns EthernetHeader and remaining payload.
func decodeEthernet(data []byte, unwrapVLAN bool) (core.EthernetHeader, []byte, error) {
	if len(data) < ethernetHeaderLen {
		return core.EthernetHeader{}, nil, fmt.Errorf("%d bytes: %w", len(data), core.ErrFrameTooShort)
	}

	eth := core.EthernetHeader{}
	copy(eth.DstMAC[:], data[0:6])
	copy(eth.SrcMAC[:], data[6:12])

	etherType := binary.BigEndian.Uint16(data[12:14])
	offset := ethernetHeaderLen

	// Tags can be nested (QinQ)
	for unwrapVLAN && (etherType == etherTypeVLAN || etherType == etherTypeQinQ) {
		if len(data) < offset+vlanHeaderLen {
			return eth, nil, fmt.Errorf("vlan tag at %d: %w", offset, core.ErrFrameTooShort)
		}

		// VLAN header: 2 bytes TCI + 2 bytes EtherType
		tci := binary.BigEndian.Uint16(data[offset : offset+2])
		eth.VLANs = append(eth.VLANs, tci&0x0FFF)

		etherType = binary.BigEndian.Uint16(data[offset+2 : offset+4])
		offset += vlanHeaderLen
	}

	eth.EtherType = etherType
	return eth, data[offset:], nil
}
