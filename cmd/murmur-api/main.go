package main

import (
	"context"

	"github.com/joho/godotenv"

	"murmur/internal/adapters/classifier"
	"murmur/internal/adapters/speech"
	googlespeech "murmur/internal/adapters/speech/google"
	mockspeech "murmur/internal/adapters/speech/mock"
	"murmur/internal/core/policy"
	"murmur/internal/modkit/repokit"
	"murmur/internal/platform/config"
	"murmur/internal/platform/events"
	"murmur/internal/platform/logger"
	phttp "murmur/internal/platform/net/http"
	"murmur/internal/platform/store"

	"murmur/internal/services/api"
	"murmur/internal/services/escalation"
)

func main() {
	// optional .env for local development, real deployments use the environment
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("MURMUR_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	kafkaCfg := root.Prefix("SERVICE_KAFKA_")

	l := logger.Get()

	pack, err := policy.Load()
	if err != nil {
		l.Panic().Err(err).Msg("policy load failed")
	}

	ctx := context.Background()

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "murmur-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*logger.Get()),
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

	transcriber := buildTranscriber(ctx, apiCfg, l)
	defer func() {
		if err := transcriber.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close transcriber")
		}
	}()

	cls := classifier.NewOpenAI(classifier.Options{
		BaseURL: apiCfg.MayString("OPENAI_BASE_URL", ""),
		APIKey:  apiCfg.MayString("OPENAI_API_KEY", ""),
		Model:   apiCfg.MayString("OPENAI_MODEL", ""),
	})

	mirror := events.NewKafkaMirror(&events.KafkaConfig{
		Brokers: kafkaCfg.MayCSV("BROKERS", nil),
		Topic:   kafkaCfg.MayString("TOPIC", "murmur.responses.published"),
		Enabled: kafkaCfg.MayBool("ENABLED", false),
	}, *l)
	bus := events.NewBus(apiCfg.MayInt("EVENT_BUFFER", 64), *l, mirror)
	defer func() {
		if err := bus.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close event bus")
		}
	}()

	// escalation notes are written off the hot path
	notifier := escalation.New(escalation.NewPG().Bind(st.PG), *logger.Named("escalation"))
	notifierCtx, stopNotifier := context.WithCancel(ctx)
	defer stopNotifier()
	go notifier.Run(notifierCtx, bus.Subscribe())

	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:        apiCfg,
			Store:         st,
			Logger:        l,
			Pack:          pack,
			Transcriber:   transcriber,
			Classifier:    cls,
			Bus:           bus,
			EnableMetrics: apiCfg.MayBool("METRICS", true),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

// buildTranscriber picks the speech backend.
// "google" needs application default credentials, "mock" cycles canned
// transcripts and keeps local development free of cloud setup
func buildTranscriber(ctx context.Context, cfg config.Conf, l *logger.Logger) speech.Transcriber {
	switch cfg.MayEnum("SPEECH_PROVIDER", "mock", "google", "mock") {
	case "google":
		t, err := googlespeech.New(ctx)
		if err != nil {
			l.Panic().Err(err).Msg("google speech client failed")
		}
		return t
	default:
		l.Warn().Msg("using mock transcriber, set MURMUR_API_SPEECH_PROVIDER=google for real transcription")
		return mockspeech.New()
	}
}
