// Package repo provides postgres access for daily prompts
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"murmur/internal/modkit/repokit"
)

// Row is one daily_prompts row
type Row struct {
	ID        string
	Question  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Repo is the minimal persistence surface for prompts
type Repo interface {
	// Get returns the prompt by id, found=false when absent
	Get(ctx context.Context, id string) (Row, bool, error)

	// Insert creates the prompt unless one already exists for the id.
	// inserted=false means a concurrent writer won the race
	Insert(ctx context.Context, row Row) (bool, error)

	// Count returns the total number of prompts
	Count(ctx context.Context) (int64, error)
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

func (r *queries) Get(ctx context.Context, id string) (Row, bool, error) {
	const sql = `
select id, question, created_at, expires_at
from daily_prompts
where id = $1
`
	var row Row
	err := r.q.QueryRow(ctx, sql, id).Scan(&row.ID, &row.Question, &row.CreatedAt, &row.ExpiresAt)
	if err != nil {
		if isNoRows(err) {
			return Row{}, false, nil
		}
		return Row{}, false, err
	}
	return row, true, nil
}

func (r *queries) Insert(ctx context.Context, row Row) (bool, error) {
	// concurrent first-of-day creation converges on the primary key
	const sql = `
insert into daily_prompts (id, question, created_at, expires_at)
values ($1, $2, $3, $4)
on conflict (id) do nothing
`
	tag, err := r.q.Exec(ctx, sql, row.ID, row.Question, row.CreatedAt, row.ExpiresAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `select count(1) from daily_prompts`).Scan(&n)
	return n, err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
