// Package classifier provides the external content classifier used by the
// moderation pipeline
package classifier

import "context"

// Result is one classifier signal.
// Category names the highest scoring category when flagged
type Result struct {
	Flagged  bool
	Category string
}

// Classifier evaluates a transcript against an external moderation model.
// ok=false means the call produced no signal (unconfigured, timeout, HTTP or
// payload failure) and callers must treat it as unavailable, never as a flag
type Classifier interface {
	Classify(ctx context.Context, text string) (res Result, ok bool)
}

// Static is a fixed-answer classifier for tests and keyless development
type Static struct {
	Res Result
	OK  bool
}

// Classify returns the configured answer
func (s Static) Classify(ctx context.Context, text string) (Result, bool) {
	if err := ctx.Err(); err != nil {
		return Result{}, false
	}
	return s.Res, s.OK
}
