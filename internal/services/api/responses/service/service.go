// Package service serves random anonymous playback
package service

import (
	"context"
	"encoding/base64"

	"murmur/internal/modkit/repokit"
	perr "murmur/internal/platform/errors"
	"murmur/internal/services/api/responses/domain"
	"murmur/internal/services/api/responses/repo"
)

// Service defines the responses service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the responses service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a responses service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("responses.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("responses.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

// Random returns one random published response for the prompt.
// Listeners never see transcripts or moderation flags
func (s *Svc) Random(ctx context.Context, promptID string) (domain.Playback, error) {
	if promptID == "" {
		return domain.Playback{}, perr.New(perr.ErrorCodeValidation, "prompt_id is required")
	}

	row, found, err := s.Repo.Random(ctx, promptID)
	if err != nil {
		return domain.Playback{}, perr.FromPostgres(err, "pick response")
	}
	if !found {
		return domain.Playback{}, perr.NotFoundf("No responses found for this prompt")
	}

	return domain.Playback{
		ID:        row.ID,
		AudioData: base64.StdEncoding.EncodeToString(row.Audio),
		Duration:  row.Duration,
		CreatedAt: row.CreatedAt,
	}, nil
}
