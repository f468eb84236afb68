// Package core defines sentinel errors.
package core

import "errors"

// Sentinel errors, wrapped with fmt.Errorf("...: %w") and matched with errors.Is.
var (
	// Frame decoding errors
	ErrFrameTooShort    = errors.New("nubble: frame too short")
	ErrHeaderTooShort   = errors.New("nubble: header too short")
	ErrUnsupportedProto = errors.New("nubble: unsupported protocol")

	// Frame source errors
	ErrSourceClosed      = errors.New("nubble: frame source closed")
	ErrInterfaceNotFound = errors.New("nubble: interface not found")

	// Configuration errors
	ErrConfigInvalid = errors.New("nubble: invalid configuration")
)
