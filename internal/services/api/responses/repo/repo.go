// Package repo provides postgres access for published responses
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"murmur/internal/modkit/repokit"
)

// Row is one audio_responses row selected for playback
type Row struct {
	ID        string
	Audio     []byte
	Duration  float64
	CreatedAt time.Time
}

// Repo is the minimal persistence surface for playback
type Repo interface {
	// Random returns one uniformly random response for the prompt,
	// found=false when the prompt has none
	Random(ctx context.Context, promptID string) (Row, bool, error)
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

func (r *queries) Random(ctx context.Context, promptID string) (Row, bool, error) {
	// fine at this table's scale; an indexed offset pick would be the
	// upgrade path if playback volume ever makes this a hot query
	const sql = `
select id, audio, duration_secs, created_at
from audio_responses
where prompt_id = $1
order by random()
limit 1
`
	var row Row
	err := r.q.QueryRow(ctx, sql, promptID).Scan(&row.ID, &row.Audio, &row.Duration, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Row{}, false, nil
		}
		return Row{}, false, err
	}
	return row, true, nil
}
