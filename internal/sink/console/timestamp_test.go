package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"epoch", time.Unix(0, 0), "00:00:00.000000"},
		{"micros", time.Date(2024, 3, 1, 7, 5, 9, 123456000, time.UTC), "07:05:09.123456"},
		{"truncates nanos", time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC), "23:59:59.999999"},
		{"non-UTC zone", time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CST", 8*3600)), "02:00:00.000000"},
		{"hour wraps per day", time.Unix(86400*3+3600*25, 0), "01:00:00.000000"},
		{"zero time", time.Time{}, ZeroTimestamp},
		{"before epoch", time.Unix(-1, 0), ZeroTimestamp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.in))
		})
	}
}
