package decoder

import (
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/nubble/internal/core"
)

var (
	testSrcMAC = net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	testDstMAC = net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
)

// serialize builds a frame with gopacket so lengths and checksums are real.
func serialize(t testing.TB, ls ...gopacket.SerializableLayer) []byte {
	t.Helper()
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	require.NoError(t, gopacket.SerializeLayers(buf, opts, ls...))
	return buf.Bytes()
}

func ethernet(t layers.EthernetType) *layers.Ethernet {
	return &layers.Ethernet{SrcMAC: testSrcMAC, DstMAC: testDstMAC, EthernetType: t}
}

func ipv4(proto layers.IPProtocol) *layers.IPv4 {
	return &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: proto,
		SrcIP:    net.IP{192, 168, 1, 1},
		DstIP:    net.IP{192, 168, 1, 2},
	}
}

func ipv6(next layers.IPProtocol) *layers.IPv6 {
	return &layers.IPv6{
		Version:    6,
		HopLimit:   64,
		NextHeader: next,
		SrcIP:      net.ParseIP("2001:db8::1"),
		DstIP:      net.ParseIP("2001:db8::2"),
	}
}

func decode(data []byte) core.DecodedFrame {
	return NewStandardDecoder(Config{UnwrapVLAN: true}).Decode(core.RawFrame{
		Data:       data,
		Timestamp:  time.Unix(1700000000, 0),
		CaptureLen: uint32(len(data)),
		OrigLen:    uint32(len(data)),
	})
}

func TestStandardDecoderIPv4TCP(t *testing.T) {
	ip := ipv4(layers.IPProtocolTCP)
	tcp := &layers.TCP{SrcPort: 443, DstPort: 51000, Seq: 1000, Ack: 2000, SYN: true, ACK: true, Window: 65535}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ip, tcp, gopacket.Payload("hello"))

	decoded := decode(data)
	require.NoError(t, decoded.Err)
	assert.Equal(t, core.ClassIPv4, decoded.Class)
	assert.Equal(t, len(data), decoded.FrameLen)
	assert.Equal(t, uint16(45), decoded.IP.Length)
	assert.Equal(t, netip.MustParseAddr("192.168.1.1"), decoded.IP.SrcIP)
	assert.Equal(t, netip.MustParseAddr("192.168.1.2"), decoded.IP.DstIP)

	require.True(t, decoded.HasTransport)
	assert.Equal(t, uint16(443), decoded.Transport.SrcPort)
	assert.Equal(t, uint16(51000), decoded.Transport.DstPort)
	assert.Equal(t, uint32(1000), decoded.Transport.SeqNum)
	assert.Equal(t, uint32(2000), decoded.Transport.AckNum)
	assert.Equal(t, uint8(0x12), decoded.Transport.TCPFlags)

	// IP payload is TCP header + data, Ethernet padding excluded
	assert.Len(t, decoded.Payload, 25)
	assert.Equal(t, []byte("hello"), decoded.Payload[20:])
}

func TestStandardDecoderIPv4UDPPadded(t *testing.T) {
	ip := ipv4(layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 5000, DstPort: 53}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ip, udp)
	require.Len(t, data, 60, "gopacket pads short frames to the Ethernet minimum")

	decoded := decode(data)
	require.NoError(t, decoded.Err)
	require.True(t, decoded.HasTransport)
	assert.Equal(t, uint8(core.ProtocolUDP), decoded.Transport.Protocol)
	assert.Equal(t, uint16(5000), decoded.Transport.SrcPort)
	assert.Equal(t, uint16(53), decoded.Transport.DstPort)
	assert.Len(t, decoded.Payload, 8)
}

func TestStandardDecoderIPv6UDP(t *testing.T) {
	ip := ipv6(layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 546, DstPort: 547}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
	data := serialize(t, ethernet(layers.EthernetTypeIPv6), ip, udp, gopacket.Payload{1, 2, 3, 4})

	decoded := decode(data)
	require.NoError(t, decoded.Err)
	assert.Equal(t, core.ClassIPv6, decoded.Class)
	assert.Equal(t, uint16(12), decoded.IP.Length)
	assert.Equal(t, netip.MustParseAddr("2001:db8::1"), decoded.IP.SrcIP)
	require.True(t, decoded.HasTransport)
	assert.Equal(t, uint16(546), decoded.Transport.SrcPort)
	assert.Equal(t, uint16(547), decoded.Transport.DstPort)
}

func TestStandardDecoderICMPHasNoPorts(t *testing.T) {
	icmp := &layers.ICMPv4{TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0), Id: 1, Seq: 1}
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ipv4(layers.IPProtocolICMPv4), icmp)

	decoded := decode(data)
	assert.NoError(t, decoded.Err)
	assert.Equal(t, core.ClassIPv4, decoded.Class)
	assert.Equal(t, uint8(core.ProtocolICMP), decoded.IP.Protocol)
	assert.False(t, decoded.HasTransport)
}

func TestStandardDecoderARP(t *testing.T) {
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   testSrcMAC,
		SourceProtAddress: []byte{10, 0, 0, 1},
		DstHwAddress:      make([]byte, 6),
		DstProtAddress:    []byte{10, 0, 0, 2},
	}
	data := serialize(t, ethernet(layers.EthernetTypeARP), arp)

	decoded := decode(data)
	require.NoError(t, decoded.Err)
	assert.Equal(t, core.ClassARP, decoded.Class)
	assert.Equal(t, core.ARPRequest, decoded.ARP.Operation)
	assert.Equal(t, netip.MustParseAddr("10.0.0.1"), decoded.ARP.SenderIP)
	assert.Equal(t, netip.MustParseAddr("10.0.0.2"), decoded.ARP.TargetIP)
	assert.Equal(t, len(data)-ethernetHeaderLen, decoded.ARP.Length)
	assert.Len(t, decoded.Payload, len(data)-ethernetHeaderLen-arpHeaderLen)
}

func TestStandardDecoderVLAN(t *testing.T) {
	ip := ipv4(layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 1, DstPort: 2}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
	dot1q := &layers.Dot1Q{VLANIdentifier: 10, Type: layers.EthernetTypeIPv4}
	data := serialize(t, ethernet(layers.EthernetTypeDot1Q), dot1q, ip, udp)

	decoded := decode(data)
	require.NoError(t, decoded.Err)
	assert.Equal(t, core.ClassIPv4, decoded.Class)
	assert.Equal(t, []uint16{10}, decoded.Ethernet.VLANs)
	assert.True(t, decoded.HasTransport)

	plain := NewStandardDecoder(Config{}).Decode(core.RawFrame{Data: data})
	assert.Equal(t, core.ClassOther, plain.Class)
	assert.ErrorIs(t, plain.Err, core.ErrUnsupportedProto)
}

func TestStandardDecoderShortFrames(t *testing.T) {
	for n := 0; n < ethernetHeaderLen; n++ {
		decoded := decode(make([]byte, n))
		assert.Equal(t, core.ClassOther, decoded.Class, "len %d", n)
		assert.Equal(t, n, decoded.FrameLen)
		assert.ErrorIs(t, decoded.Err, core.ErrFrameTooShort)
	}
}

func TestStandardDecoderTruncatedIPv4(t *testing.T) {
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ipv4(layers.IPProtocolTCP))
	for n := ethernetHeaderLen; n < ethernetHeaderLen+ipv4HeaderMinLen; n++ {
		decoded := decode(data[:n])
		assert.Equal(t, core.ClassOther, decoded.Class, "len %d", n)
		assert.Equal(t, n, decoded.FrameLen)
		assert.ErrorIs(t, decoded.Err, core.ErrHeaderTooShort)
		assert.Nil(t, decoded.Payload)
	}
}

func TestStandardDecoderTruncatedTCP(t *testing.T) {
	ip := ipv4(layers.IPProtocolTCP)
	tcp := &layers.TCP{SrcPort: 80, DstPort: 8080, SYN: true}
	require.NoError(t, tcp.SetNetworkLayerForChecksum(ip))
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ip, tcp)

	// Cut the frame inside the TCP header
	decoded := decode(data[:ethernetHeaderLen+ipv4HeaderMinLen+10])
	assert.Equal(t, core.ClassIPv4, decoded.Class)
	assert.False(t, decoded.HasTransport)
	assert.ErrorIs(t, decoded.Err, core.ErrHeaderTooShort)
	assert.Len(t, decoded.Payload, 10)
}

func TestStandardDecoderTrailingFragmentReadsPorts(t *testing.T) {
	ip := ipv4(layers.IPProtocolUDP)
	ip.FragOffset = 185
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ip, gopacket.Payload{0, 1, 0, 2, 0, 0, 0, 0})

	decoded := decode(data)
	assert.NoError(t, decoded.Err)
	assert.Equal(t, core.ClassIPv4, decoded.Class)
	require.True(t, decoded.HasTransport)
	assert.Equal(t, uint16(1), decoded.Transport.SrcPort)
	assert.Equal(t, uint16(2), decoded.Transport.DstPort)
}

func TestStandardDecoderUnknownEtherType(t *testing.T) {
	data := serialize(t, ethernet(layers.EthernetTypeLinkLayerDiscovery), gopacket.Payload{1, 2, 3})

	decoded := decode(data)
	assert.Equal(t, core.ClassOther, decoded.Class)
	assert.Equal(t, len(data), decoded.FrameLen)
	assert.ErrorIs(t, decoded.Err, core.ErrUnsupportedProto)
}

func TestStandardDecoderPayloadAliasesFrame(t *testing.T) {
	ip := ipv4(layers.IPProtocolUDP)
	udp := &layers.UDP{SrcPort: 1, DstPort: 2}
	require.NoError(t, udp.SetNetworkLayerForChecksum(ip))
	data := serialize(t, ethernet(layers.EthernetTypeIPv4), ip, udp, gopacket.Payload{0x42})

	decoded := decode(data)
	require.NotEmpty(t, decoded.Payload)
	decoded.Payload[0] = 0xFF
	assert.Equal(t, byte(0xFF), data[ethernetHeaderLen+ipv4HeaderMinLen], "payload must be a view, not a copy")
}

func BenchmarkStandardDecoderTCP(b *testing.B) {
	ip := ipv4(layers.IPProtocolTCP)
	tcp := &layers.TCP{SrcPort: 443, DstPort: 51000, ACK: true}
	_ = tcp.SetNetworkLayerForChecksum(ip)
	raw := core.RawFrame{Data: serialize(b, ethernet(layers.EthernetTypeIPv4), ip, tcp)}
	d := NewStandardDecoder(Config{UnwrapVLAN: true})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Decode(raw)
	}
}
