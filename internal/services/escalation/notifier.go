// Package escalation records self-harm signals for human follow-up.
// It consumes published-response events off the in-process bus so the
// submission path never blocks on escalation bookkeeping
package escalation

import (
	"context"
	"time"

	"murmur/internal/modkit/repokit"
	"murmur/internal/platform/events"
	"murmur/internal/platform/logger"
)

// Recorder persists one escalation note
type Recorder interface {
	RecordEscalation(ctx context.Context, note Note) error
}

// Note is one escalated_responses row
type Note struct {
	ResponseID string
	PromptID   string
	Transcript string
	Flags      []string
	CreatedAt  time.Time
	NotedAt    time.Time
}

// Notifier drains the event stream and records escalated responses
type Notifier struct {
	rec Recorder
	log logger.Logger
	now func() time.Time
}

// New constructs a Notifier
func New(rec Recorder, log logger.Logger) *Notifier {
	if rec == nil {
		panic("escalation.Notifier requires a Recorder")
	}
	return &Notifier{rec: rec, log: log, now: time.Now}
}

// Run consumes events until the channel closes or ctx is canceled.
// Recording failures are logged and skipped, an escalation note is
// best effort and must never wedge the stream
func (n *Notifier) Run(ctx context.Context, ch <-chan events.ResponsePublished) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if !ev.Escalated {
				continue
			}
			note := Note{
				ResponseID: ev.ResponseID,
				PromptID:   ev.PromptID,
				Transcript: ev.Transcript,
				Flags:      ev.Flags,
				CreatedAt:  ev.CreatedAt,
				NotedAt:    n.now().UTC(),
			}
			if err := n.rec.RecordEscalation(ctx, note); err != nil {
				n.log.Error().Err(err).
					Str("response_id", ev.ResponseID).
					Msg("failed to record escalation")
				continue
			}
			n.log.Warn().
				Str("response_id", ev.ResponseID).
				Str("prompt_id", ev.PromptID).
				Msg("escalated response recorded")
		}
	}
}

type (
	// PG is a binder that can bind the recorder to a Queryer or TxRunner
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the postgres recorder
func NewPG() repokit.Binder[Recorder] { return PG{} }

// Bind wires a Queryer to the recorder
func (PG) Bind(q repokit.Queryer) Recorder { return &queries{q: q} }

func (r *queries) RecordEscalation(ctx context.Context, note Note) error {
	const sql = `
insert into escalated_responses (response_id, prompt_id, transcript, flags, created_at, noted_at)
values ($1, $2, $3, $4, $5, $6)
on conflict (response_id) do nothing
`
	_, err := r.q.Exec(ctx, sql,
		note.ResponseID, note.PromptID, note.Transcript, note.Flags, note.CreatedAt, note.NotedAt)
	return err
}
