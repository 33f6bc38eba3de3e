// Package service orchestrates the submission moderation pipeline
package service

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/google/uuid"

	"murmur/internal/adapters/classifier"
	"murmur/internal/adapters/speech"
	"murmur/internal/core/decision"
	"murmur/internal/core/scan"
	"murmur/internal/modkit/repokit"
	perr "murmur/internal/platform/errors"
	"murmur/internal/platform/events"
	"murmur/internal/platform/logger"
	"murmur/internal/platform/metrics"
	promptdomain "murmur/internal/services/api/prompts/domain"
	"murmur/internal/services/api/submissions/domain"
	"murmur/internal/services/api/submissions/repo"
)

const (
	defaultDuration          = 5.0
	defaultTranscribeTimeout = 20 * time.Second
	defaultClassifyTimeout   = 5 * time.Second
)

// Service defines the submissions service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the submission pipeline
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner

	prompts     promptdomain.ServicePort
	transcriber speech.Transcriber
	classifier  classifier.Classifier
	scanner     *scan.Scanner
	bus         *events.Bus

	log logger.Logger
	met *metrics.Metrics

	now   func() time.Time
	newID func() string

	transcribeTimeout time.Duration
	classifyTimeout   time.Duration
}

// Deps are the pipeline collaborators
type Deps struct {
	DB          repokit.TxRunner
	Binder      repokit.Binder[repo.Repo]
	Prompts     promptdomain.ServicePort
	Transcriber speech.Transcriber
	Classifier  classifier.Classifier
	Scanner     *scan.Scanner
	Bus         *events.Bus
	Log         logger.Logger
}

// New constructs the submissions service
func New(d Deps) *Svc {
	if d.DB == nil {
		panic("submissions.Service requires a non nil TxRunner")
	}
	if d.Binder == nil {
		panic("submissions.Service requires a non nil Repo binder")
	}
	if d.Prompts == nil || d.Transcriber == nil || d.Classifier == nil || d.Scanner == nil {
		panic("submissions.Service requires prompts, transcriber, classifier and scanner")
	}
	return &Svc{
		Repo:              d.Binder.Bind(d.DB),
		binder:            d.Binder,
		db:                d.DB,
		prompts:           d.Prompts,
		transcriber:       d.Transcriber,
		classifier:        d.Classifier,
		scanner:           d.Scanner,
		bus:               d.Bus,
		log:               d.Log,
		met:               metrics.Default,
		now:               time.Now,
		newID:             func() string { return uuid.NewString() },
		transcribeTimeout: defaultTranscribeTimeout,
		classifyTimeout:   defaultClassifyTimeout,
	}
}

// Submit runs validation, transcription, moderation and routing for one clip
func (s *Svc) Submit(ctx context.Context, in domain.SubmitInput) (domain.Accepted, error) {
	start := s.now()

	if in.PromptID == "" || in.AudioData == "" {
		return domain.Accepted{}, perr.New(perr.ErrorCodeValidation, "Missing required fields")
	}

	prompt, err := s.prompts.Get(ctx, in.PromptID)
	if err != nil {
		return domain.Accepted{}, err
	}
	if s.now().After(prompt.ExpiresAt) {
		return domain.Accepted{}, perr.Expiredf("Prompt has expired")
	}

	audio, err := base64.StdEncoding.DecodeString(in.AudioData)
	if err != nil {
		return domain.Accepted{}, perr.Wrap(err, perr.ErrorCodeValidation, "Invalid audio data")
	}

	duration := in.Duration
	if duration <= 0 {
		duration = defaultDuration
	}

	transcript := s.transcribe(ctx, audio)
	verdict := s.moderate(ctx, transcript)
	s.met.RecordFlags(verdict.Flags)
	if verdict.Escalated {
		s.met.EscalationsTotal.Inc()
	}

	if !verdict.Approved {
		entry := repo.QueueRow{
			PromptID:   in.PromptID,
			Transcript: transcript,
			Approved:   false,
			Flags:      verdict.Flags,
			Escalated:  verdict.Escalated,
			Reason:     verdict.Reason,
			CreatedAt:  s.now().UTC(),
		}
		if err := s.Repo.InsertQueueEntry(ctx, entry); err != nil {
			return domain.Accepted{}, perr.FromPostgres(err, "record rejection")
		}
		s.met.RecordSubmission("rejected", s.now().Sub(start).Seconds())
		return domain.Accepted{}, &domain.Rejection{
			Reason:    verdict.Reason,
			Flags:     verdict.Flags,
			Escalated: verdict.Escalated,
		}
	}

	row := repo.ResponseRow{
		ID:         s.newID(),
		PromptID:   in.PromptID,
		Audio:      audio,
		Transcript: transcript,
		Duration:   duration,
		Flags:      verdict.Flags,
		Escalated:  verdict.Escalated,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.Repo.InsertResponse(ctx, row); err != nil {
		return domain.Accepted{}, perr.FromPostgres(err, "store response")
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ResponsePublished{
			ResponseID: row.ID,
			PromptID:   row.PromptID,
			Transcript: row.Transcript,
			Flags:      row.Flags,
			Escalated:  row.Escalated,
			CreatedAt:  row.CreatedAt,
		})
	}

	s.met.RecordSubmission("accepted", s.now().Sub(start).Seconds())
	return domain.Accepted{Success: true, ResponseID: row.ID, Escalated: row.Escalated}, nil
}

// transcribe runs the speech adapter under its own deadline.
// Any failure degrades to an empty transcript, never a pipeline abort
func (s *Svc) transcribe(ctx context.Context, audio []byte) string {
	tctx, cancel := context.WithTimeout(ctx, s.transcribeTimeout)
	defer cancel()

	start := s.now()
	text, err := s.transcriber.Transcribe(tctx, audio)
	s.met.RecordTranscribe(err, s.now().Sub(start).Seconds())
	if err != nil {
		s.log.Warn().Err(err).Msg("transcription failed, continuing with empty transcript")
		return ""
	}
	return text
}

// moderate joins the lexical scan and the classifier over the transcript.
// The two signals have no ordering dependency and run concurrently, the
// verdict waits on both. A panic anywhere in the attempt fails closed
func (s *Svc) moderate(ctx context.Context, transcript string) (v decision.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Any("panic", r).Msg("moderation attempt panicked, failing closed")
			v = decision.ErrorVerdict()
		}
	}()

	type clsOut struct {
		res      classifier.Result
		ok       bool
		panicked bool
	}
	clsCh := make(chan clsOut, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error().Any("panic", r).Msg("classifier panicked")
				clsCh <- clsOut{panicked: true}
			}
		}()
		cctx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
		defer cancel()

		start := s.now()
		res, ok := s.classifier.Classify(cctx, transcript)
		kind := ""
		if !ok {
			kind = "unavailable"
		}
		s.met.RecordClassify(kind, s.now().Sub(start).Seconds())
		clsCh <- clsOut{res: res, ok: ok}
	}()

	sc := s.scanner.Scan(transcript)
	cls := <-clsCh
	if cls.panicked {
		return decision.ErrorVerdict()
	}

	return decision.Decide(sc, decision.Classification{
		Flagged:  cls.res.Flagged,
		Category: cls.res.Category,
	}, cls.ok)
}
