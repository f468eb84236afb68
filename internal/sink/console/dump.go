package console

const hexDigits = "0123456789abcdef"

// HexDump renders b as lowercase hex byte pairs separated by single spaces.
func HexDump(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexDigits[c>>4], hexDigits[c&0x0F])
	}
	return string(out)
}

// ASCIIDump renders printable ASCII (0x20-0x7E) as-is and every other byte
// as '.'. The result has exactly len(b) bytes.
func ASCIIDump(b []byte) string {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 0x20 && c <= 0x7E {
			out[i] = c
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
