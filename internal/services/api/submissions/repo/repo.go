// Package repo provides postgres access for audio responses and the moderation queue
package repo

import (
	"context"
	"time"

	"murmur/internal/modkit/repokit"
)

// ResponseRow is one audio_responses row
type ResponseRow struct {
	ID         string
	PromptID   string
	Audio      []byte
	Transcript string
	Duration   float64
	Flags      []string
	Escalated  bool
	CreatedAt  time.Time
}

// QueueRow is one moderation_queue row
type QueueRow struct {
	PromptID   string
	Transcript string
	Approved   bool
	Flags      []string
	Escalated  bool
	Reason     string
	CreatedAt  time.Time
}

// Repo is the minimal persistence surface for submissions
type Repo interface {
	// InsertResponse stores an approved response
	InsertResponse(ctx context.Context, row ResponseRow) error

	// InsertQueueEntry appends a rejected submission to the moderation queue
	InsertQueueEntry(ctx context.Context, row QueueRow) error
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) InsertResponse(ctx context.Context, row ResponseRow) error {
	const sql = `
insert into audio_responses (id, prompt_id, audio, transcript, duration_secs, flags, escalated, created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.q.Exec(ctx, sql,
		row.ID, row.PromptID, row.Audio, row.Transcript, row.Duration, row.Flags, row.Escalated, row.CreatedAt)
	return err
}

func (r *queries) InsertQueueEntry(ctx context.Context, row QueueRow) error {
	const sql = `
insert into moderation_queue (prompt_id, transcript, approved, flags, escalated, reason, created_at)
values ($1, $2, $3, $4, $5, $6, $7)
`
	_, err := r.q.Exec(ctx, sql,
		row.PromptID, row.Transcript, row.Approved, row.Flags, row.Escalated, row.Reason, row.CreatedAt)
	return err
}
