// Package api mounts the voice journal HTTP surface
package api

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"murmur/internal/adapters/classifier"
	"murmur/internal/adapters/speech"
	"murmur/internal/core/policy"
	"murmur/internal/core/scan"
	"murmur/internal/platform/config"
	"murmur/internal/platform/events"
	"murmur/internal/platform/logger"
	phttp "murmur/internal/platform/net/http"
	"murmur/internal/platform/store"

	"murmur/internal/modkit"
	"murmur/internal/modkit/httpkit"

	metamod "murmur/internal/services/api/meta/module"
	promptsmod "murmur/internal/services/api/prompts/module"
	resourcesmod "murmur/internal/services/api/resources/module"
	responsesmod "murmur/internal/services/api/responses/module"
	statsmod "murmur/internal/services/api/stats/module"
	submissionsmod "murmur/internal/services/api/submissions/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	Pack        *policy.Pack
	Transcriber speech.Transcriber
	Classifier  classifier.Classifier
	Bus         *events.Bus

	EnableMetrics bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log: *opt.Logger,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		Bus: opt.Bus,
	}

	scanner := scan.New(opt.Pack)

	// prompts first, submissions consumes its port
	prompts := promptsmod.New(deps, opt.Pack)
	promptsPort := prompts.Ports().(promptsmod.Ports).Prompts

	mods := []modkit.Module{
		metamod.New(deps, opt.Pack),
		prompts,
		submissionsmod.New(deps, submissionsmod.Collaborators{
			Prompts:     promptsPort,
			Transcriber: opt.Transcriber,
			Classifier:  opt.Classifier,
			Scanner:     scanner,
		}),
		responsesmod.New(deps),
		statsmod.New(deps),
		resourcesmod.New(deps, opt.Pack),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	if opt.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}
}
