package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"murmur/internal/core/policy"
	"murmur/internal/modkit/repokit"
	"murmur/internal/platform/config"
	"murmur/internal/platform/logger"
	"murmur/internal/platform/store"

	promptsrepo "murmur/internal/services/api/prompts/repo"
	promptssvc "murmur/internal/services/api/prompts/service"
	"murmur/internal/services/janitor"
)

func main() {
	_ = godotenv.Load()

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	janCfg := root.Prefix("MURMUR_JANITOR_")

	l := logger.Named("janitor")

	pack, err := policy.Load()
	if err != nil {
		l.Panic().Err(err).Msg("policy load failed")
	}

	ctx := context.Background()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "murmur-janitor",
			PG: store.PGConfig{
				Enabled:  true,
				URL:      pgCfg.MustString("DBURL"),
				MaxConns: int32(pgCfg.MayInt("MAX_CONNS", 2)),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	prompts := promptssvc.New(st.PG, promptsrepo.NewPG(), pack)

	j := janitor.New(st.PG, prompts, *l)
	j.GenSpec = janCfg.MayString("GENERATE_CRON", j.GenSpec)
	j.SweepSpec = janCfg.MayString("SWEEP_CRON", j.SweepSpec)
	if err := j.Start(); err != nil {
		l.Panic().Err(err).Msg("janitor start failed")
	}
	defer j.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	l.Info().Msg("shutting down")
}
