// Package speech defines the interface for speech-to-text adapters
package speech

import "context"

// Transcriber converts one recorded clip into text.
// Implementations own their timeouts below the ctx deadline
type Transcriber interface {
	// Transcribe returns the transcript for the given audio bytes
	Transcribe(ctx context.Context, audio []byte) (string, error)

	// Close releases provider resources
	Close() error
}
