// Package repo provides postgres access for activity stats
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"murmur/internal/modkit/repokit"
)

// Repo is the read-only surface the stats service aggregates over
type Repo interface {
	// TotalPrompts returns the all-time prompt count
	TotalPrompts(ctx context.Context) (int64, error)

	// PromptQuestion returns the question for the given prompt id,
	// found=false when the day has no prompt yet
	PromptQuestion(ctx context.Context, id string) (string, bool, error)

	// ResponseCount returns how many published responses a prompt has
	ResponseCount(ctx context.Context, promptID string) (int64, error)
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

func (r *queries) TotalPrompts(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `select count(1) from daily_prompts`).Scan(&n)
	return n, err
}

func (r *queries) PromptQuestion(ctx context.Context, id string) (string, bool, error) {
	var q string
	err := r.q.QueryRow(ctx, `select question from daily_prompts where id = $1`, id).Scan(&q)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return q, true, nil
}

func (r *queries) ResponseCount(ctx context.Context, promptID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `select count(1) from audio_responses where prompt_id = $1`, promptID).Scan(&n)
	return n, err
}
