package log

import (
	"errors"
	"io"
	"sync"
)

// MultiWriter fans log output out to the console and any file appenders.
// A failing writer does not stop the others. Only appenders it opened
// itself are closed by Close; the console stream is left alone.
type MultiWriter struct {
	mu      sync.Mutex
	writers []io.Writer
	owned   []io.Closer
}

func NewMultiWriter() *MultiWriter {
	return &MultiWriter{}
}

func (m *MultiWriter) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, w := range m.writers {
		if _, err := w.Write(p); err != nil {
			errs = append(errs, err)
		}
	}
	return len(p), errors.Join(errs...)
}

// Add appends a writer the caller keeps ownership of.
func (m *MultiWriter) Add(writer io.Writer) *MultiWriter {
	m.mu.Lock()
	m.writers = append(m.writers, writer)
	m.mu.Unlock()
	return m
}

func (m *MultiWriter) addOwned(wc io.WriteCloser) *MultiWriter {
	m.mu.Lock()
	m.writers = append(m.writers, wc)
	m.owned = append(m.owned, wc)
	m.mu.Unlock()
	return m
}

// Close closes the appenders opened through this writer.
func (m *MultiWriter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, c := range m.owned {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.owned = nil
	return errors.Join(errs...)
}
