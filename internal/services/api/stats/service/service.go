// Package service aggregates activity stats
package service

import (
	"context"
	"time"

	"murmur/internal/modkit/repokit"
	perr "murmur/internal/platform/errors"
	"murmur/internal/services/api/stats/domain"
	"murmur/internal/services/api/stats/repo"
)

// Service defines the stats service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the stats service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	now func() time.Time
}

// New constructs a stats service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("stats.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("stats.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		now:    time.Now,
	}
}

// Overview reads the snapshot without creating today's prompt.
// A day nobody has visited yet reports its prompt as "None"
func (s *Svc) Overview(ctx context.Context) (domain.Overview, error) {
	today := s.now().UTC().Format("2006-01-02")

	total, err := s.Repo.TotalPrompts(ctx)
	if err != nil {
		return domain.Overview{}, perr.FromPostgres(err, "count prompts")
	}

	question, found, err := s.Repo.PromptQuestion(ctx, today)
	if err != nil {
		return domain.Overview{}, perr.FromPostgres(err, "load current prompt")
	}
	if !found {
		question = "None"
	}

	var responses int64
	if found {
		responses, err = s.Repo.ResponseCount(ctx, today)
		if err != nil {
			return domain.Overview{}, perr.FromPostgres(err, "count responses")
		}
	}

	return domain.Overview{
		TotalPrompts:   total,
		CurrentPrompt:  question,
		ResponsesToday: responses,
		TotalUsers:     responses,
	}, nil
}
