package core

// IP next-protocol numbers.
const (
	ProtocolICMP uint8 = 1
	ProtocolIGMP uint8 = 2
	ProtocolTCP  uint8 = 6
	ProtocolUDP  uint8 = 17
	ProtocolESP  uint8 = 50
	ProtocolOSPF uint8 = 89
)

// ARP operation codes.
const (
	ARPRequest uint16 = 1
	ARPReply   uint16 = 2
)

// ProtocolName returns the display name of an IP next-protocol number.
// Unknown numbers map to "Other".
func ProtocolName(p uint8) string {
	switch p {
	case ProtocolUDP:
		return "UDP"
	case ProtocolTCP:
		return "TCP"
	case ProtocolICMP:
		return "ICMP"
	case ProtocolIGMP:
		return "IGMP"
	case ProtocolOSPF:
		return "OSPF"
	case ProtocolESP:
		return "ESP"
	default:
		return "Other"
	}
}

// ARPOperationName returns the display name of an ARP operation code.
func ARPOperationName(op uint16) string {
	switch op {
	case ARPRequest:
		return "Request"
	case ARPReply:
		return "Reply"
	default:
		return "Other"
	}
}
