package console

import (
	"fmt"

	"firestige.xyz/nubble/internal/core"
)

// tcpFlagLetters is indexed by bit position, FIN first.
const tcpFlagLetters = "FSRPAUEC"

// TCPFlags renders the TCP flag byte, one letter per set bit in FIN..CWR
// order. No flags renders as "".
func TCPFlags(flags uint8) string {
	out := make([]byte, 0, 8)
	for i := 0; i < 8; i++ {
		if flags&(1<<i) != 0 {
			out = append(out, tcpFlagLetters[i])
		}
	}
	return string(out)
}

// Record is the printable form of one frame.
type Record struct {
	Line string
	// Hex and ASCII are only meaningful when HasDump is set.
	Hex     string
	ASCII   string
	HasDump bool
}

// Format renders a decoded frame. Only IP lines carry a timestamp.
func Format(f core.DecodedFrame) Record {
	var rec Record

	switch f.Class {
	case core.ClassIPv4, core.ClassIPv6:
		rec.Line = formatIP(f)
	case core.ClassARP:
		rec.Line = fmt.Sprintf("ARP packet: %s > %s operation %s len %d",
			f.ARP.SenderIP, f.ARP.TargetIP, core.ARPOperationName(f.ARP.Operation), f.ARP.Length)
	default:
		rec.Line = fmt.Sprintf("Other packet: %d", f.FrameLen)
		return rec
	}

	rec.Hex = HexDump(f.Payload)
	rec.ASCII = ASCIIDump(f.Payload)
	rec.HasDump = true
	return rec
}

func formatIP(f core.DecodedFrame) string {
	ts := FormatTimestamp(f.Timestamp)
	family := "IP"
	if f.Class == core.ClassIPv6 {
		family = "IP6"
	}
	proto := core.ProtocolName(f.IP.Protocol)

	if !f.HasTransport {
		return fmt.Sprintf("%s %s %s > %s proto %s len %d",
			ts, family, f.IP.SrcIP, f.IP.DstIP, proto, f.IP.Length)
	}

	th := f.Transport
	if th.Protocol == core.ProtocolTCP {
		return fmt.Sprintf("%s %s %s.%d > %s.%d proto %s seq %d ack %d flags %s len %d",
			ts, family, f.IP.SrcIP, th.SrcPort, f.IP.DstIP, th.DstPort, proto,
			th.SeqNum, th.AckNum, TCPFlags(th.TCPFlags), f.IP.Length)
	}
	return fmt.Sprintf("%s %s %s.%d > %s.%d proto %s len %d",
		ts, family, f.IP.SrcIP, th.SrcPort, f.IP.DstIP, th.DstPort, proto, f.IP.Length)
}
