// Package service contains prompt lifecycle workflows
package service

import (
	"context"
	"math/rand"
	"time"

	"murmur/internal/core/policy"
	"murmur/internal/modkit/repokit"
	perr "murmur/internal/platform/errors"
	"murmur/internal/platform/metrics"
	"murmur/internal/services/api/prompts/domain"
	"murmur/internal/services/api/prompts/repo"
)

// Service defines the prompts service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the prompts service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	pack   *policy.Pack

	now  func() time.Time
	pick func(n int) int
}

// New constructs a prompts service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], pack *policy.Pack) *Svc {
	if db == nil {
		panic("prompts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("prompts.Service requires a non nil Repo binder")
	}
	if pack == nil {
		panic("prompts.Service requires a policy pack")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
		pack:   pack,
		now:    time.Now,
		pick:   rand.Intn,
	}
}

// Current returns today's prompt, creating it lazily
func (s *Svc) Current(ctx context.Context) (domain.Prompt, error) {
	return s.EnsureFor(ctx, s.now())
}

// Get returns the prompt with the given id
func (s *Svc) Get(ctx context.Context, id string) (domain.Prompt, error) {
	row, found, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Prompt{}, perr.FromPostgres(err, "load prompt")
	}
	if !found {
		return domain.Prompt{}, perr.NotFoundf("prompt %s not found", id)
	}
	return toDomain(row), nil
}

// EnsureFor creates the prompt for day when absent and returns it.
// Concurrent callers converge on the insert conflict and re-read
func (s *Svc) EnsureFor(ctx context.Context, day time.Time) (domain.Prompt, error) {
	id := day.UTC().Format("2006-01-02")

	row, found, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Prompt{}, perr.FromPostgres(err, "load prompt")
	}
	if found {
		return toDomain(row), nil
	}

	question := s.pack.Questions[s.pick(len(s.pack.Questions))]
	now := s.now().UTC()
	fresh := repo.Row{
		ID:        id,
		Question:  question,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}

	inserted, err := s.Repo.Insert(ctx, fresh)
	if err != nil {
		return domain.Prompt{}, perr.FromPostgres(err, "create prompt")
	}
	if inserted {
		metrics.Default.PromptsCreated.Inc()
		return toDomain(fresh), nil
	}

	// another writer won, read theirs
	row, found, err = s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Prompt{}, perr.FromPostgres(err, "reload prompt")
	}
	if !found {
		return domain.Prompt{}, perr.Internalf("prompt %s vanished after insert conflict", id)
	}
	return toDomain(row), nil
}

func toDomain(r repo.Row) domain.Prompt {
	return domain.Prompt{
		ID:        r.ID,
		Question:  r.Question,
		Date:      r.ID,
		CreatedAt: r.CreatedAt,
		ExpiresAt: r.ExpiresAt,
	}
}
