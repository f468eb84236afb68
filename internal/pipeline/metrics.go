package pipeline

import "sync/atomic"

// Metrics holds the pipeline counters. Stats may be read from another
// goroutine while Run is active.
type Metrics struct {
	Received     atomic.Uint64
	DecodeErrors atomic.Uint64 // frames printed with a fallback line
	Printed      atomic.Uint64
}

// Reset resets all counters to zero.
func (m *Metrics) Reset() {
	m.Received.Store(0)
	m.DecodeErrors.Store(0)
	m.Printed.Store(0)
}
