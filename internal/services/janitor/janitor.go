// Package janitor runs the scheduled maintenance jobs: pre-generating
// the day's prompt at noon UTC and sweeping expired content at midnight
package janitor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"murmur/internal/modkit/repokit"
	perr "murmur/internal/platform/errors"
	"murmur/internal/platform/logger"
	"murmur/internal/platform/metrics"
	promptdomain "murmur/internal/services/api/prompts/domain"
)

const (
	// noon UTC, gives the prompt a head start before peak posting hours
	defaultGenSpec = "0 12 * * *"
	// midnight UTC, right after the previous day's prompts expire
	defaultSweepSpec = "0 0 * * *"
)

// Janitor owns the cron schedule
type Janitor struct {
	// cron expressions, overridable before Start
	GenSpec   string
	SweepSpec string

	db      repokit.TxRunner
	prompts promptdomain.ServicePort
	log     logger.Logger

	cron *cron.Cron
	now  func() time.Time
}

// New constructs a Janitor. Jobs are registered but not started
func New(db repokit.TxRunner, prompts promptdomain.ServicePort, log logger.Logger) *Janitor {
	if db == nil {
		panic("janitor requires a non nil TxRunner")
	}
	if prompts == nil {
		panic("janitor requires the prompts service")
	}
	return &Janitor{
		GenSpec:   defaultGenSpec,
		SweepSpec: defaultSweepSpec,
		db:        db,
		prompts:   prompts,
		log:       log,
		cron:      cron.New(cron.WithLocation(time.UTC)),
		now:       time.Now,
	}
}

// Start registers the schedule and launches the cron loop
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.GenSpec, j.generateJob); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "register prompt generation job")
	}
	if _, err := j.cron.AddFunc(j.SweepSpec, j.sweepJob); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "register sweep job")
	}
	j.cron.Start()
	j.log.Info().
		Str("generate", j.GenSpec).
		Str("sweep", j.SweepSpec).
		Msg("janitor schedule started")
	return nil
}

// Stop halts the schedule and waits for running jobs
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) generateJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := j.prompts.EnsureFor(ctx, j.now())
	if err != nil {
		j.log.Error().Err(err).Msg("scheduled prompt generation failed")
		return
	}
	j.log.Info().Str("prompt_id", p.ID).Msg("daily prompt ready")
}

func (j *Janitor) sweepJob() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// cap each sweep transaction server side as well
	db := repokit.WithBeginHooks(j.db, func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, `set local statement_timeout = '240s'`)
		return err
	})

	deleted, err := Sweep(ctx, db, j.now().UTC())
	if err != nil {
		j.log.Error().Err(err).Msg("sweep failed")
		return
	}
	j.log.Info().Int64("deleted", deleted.Total()).Msg("sweep complete")
}

// Deleted reports per-table sweep counts
type Deleted struct {
	Prompts   int64
	Responses int64
	Queue     int64
}

// Total sums the per-table counts
func (d Deleted) Total() int64 { return d.Prompts + d.Responses + d.Queue }

// Sweep deletes prompts expired before cutoff together with their
// responses and moderation queue rows, in one transaction so a failed
// run leaves no half-deleted prompt behind
func Sweep(ctx context.Context, db repokit.TxRunner, cutoff time.Time) (Deleted, error) {
	var d Deleted
	err := db.Tx(ctx, func(q repokit.Queryer) error {
		tag, err := q.Exec(ctx, `
delete from audio_responses
where prompt_id in (select id from daily_prompts where expires_at <= $1)
`, cutoff)
		if err != nil {
			return err
		}
		d.Responses = tag.RowsAffected()

		tag, err = q.Exec(ctx, `
delete from moderation_queue
where prompt_id in (select id from daily_prompts where expires_at <= $1)
`, cutoff)
		if err != nil {
			return err
		}
		d.Queue = tag.RowsAffected()

		tag, err = q.Exec(ctx, `delete from daily_prompts where expires_at <= $1`, cutoff)
		if err != nil {
			return err
		}
		d.Prompts = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return Deleted{}, perr.FromPostgres(err, "sweep expired content")
	}

	met := metrics.Default
	met.SweepDeleted.WithLabelValues("daily_prompts").Add(float64(d.Prompts))
	met.SweepDeleted.WithLabelValues("audio_responses").Add(float64(d.Responses))
	met.SweepDeleted.WithLabelValues("moderation_queue").Add(float64(d.Queue))
	return d, nil
}
