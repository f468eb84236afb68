package console

import "time"

// ZeroTimestamp is printed when no usable capture time is available.
const ZeroTimestamp = "00:00:00.000000"

var epoch = time.Unix(0, 0)

// FormatTimestamp renders t as HH:MM:SS.uuuuuu in UTC. Sub-microsecond
// digits are truncated.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() || t.Before(epoch) {
		return ZeroTimestamp
	}
	return t.UTC().Format("15:04:05.000000")
}
