// Package mock provides a transcriber for tests and keyless development
package mock

import (
	"context"
	"sync"
)

// DefaultTranscripts cycle per call when no fixed transcript is set
var DefaultTranscripts = []string{
	"I can hear rain on the window right now.",
	"My mood today would be a soft blue.",
	"A stranger held the door for me and it made me smile.",
	"The air feels warm and a little heavy.",
	"Grateful for a quiet morning with coffee.",
}

// Adapter implements speech.Transcriber with canned transcripts
type Adapter struct {
	mu    sync.Mutex
	next  int
	fixed string
	err   error
	calls int
}

// New creates a mock that cycles through DefaultTranscripts
func New() *Adapter { return &Adapter{} }

// NewFixed creates a mock returning the same transcript and error every call
func NewFixed(transcript string, err error) *Adapter {
	return &Adapter{fixed: transcript, err: err}
}

// Transcribe returns the configured transcript immediately
func (a *Adapter) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	if a.fixed != "" {
		return a.fixed, nil
	}
	t := DefaultTranscripts[a.next%len(DefaultTranscripts)]
	a.next++
	return t, nil
}

// Calls reports how many times Transcribe ran
func (a *Adapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// Close is a no-op
func (a *Adapter) Close() error { return nil }
