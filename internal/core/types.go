// Package core defines core types with zero external dependencies.
package core

import "net/netip"

// NetworkClass is the classification of an Ethernet payload.
type NetworkClass uint8

const (
	ClassOther NetworkClass = iota // unclassified or undecodable
	ClassIPv4
	ClassIPv6
	ClassARP
)

func (c NetworkClass) String() string {
	switch c {
	case ClassIPv4:
		return "IPv4"
	case ClassIPv6:
		return "IPv6"
	case ClassARP:
		return "ARP"
	default:
		return "Other"
	}
}

// EthernetHeader represents L2 Ethernet frame header.
type EthernetHeader struct {
	SrcMAC    [6]byte
	DstMAC    [6]byte
	EtherType uint16   // 0x0800=IPv4, 0x86DD=IPv6, 0x0806=ARP
	VLANs     []uint16 // 0~2 VLAN IDs (QinQ scenarios have 2)
}

// IPHeader represents L3 IP header (IPv4/IPv6).
type IPHeader struct {
	Version  uint8
	SrcIP    netip.Addr
	DstIP    netip.Addr
	Protocol uint8 // IPv4 protocol byte or IPv6 next header
	TTL      uint8
	// Length is the IPv4 total length or the IPv6 payload length, as carried
	// on the wire.
	Length uint16
}

// ARPHeader represents an Ethernet/IPv4 ARP packet.
type ARPHeader struct {
	Operation uint16
	SenderMAC [6]byte
	SenderIP  netip.Addr
	TargetMAC [6]byte
	TargetIP  netip.Addr
	Length    int // Length of the ARP buffer, trailing padding included
}

// TransportHeader represents L4 transport layer header (TCP/UDP).
type TransportHeader struct {
	SrcPort  uint16
	DstPort  uint16
	Protocol uint8
	// TCP-specific fields (only populated for TCP)
	TCPFlags uint8
	SeqNum   uint32
	AckNum   uint32
}
