package orchestrator

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/playerjs"
)

// Engine resolves video info records from the watch payload, the player
// script and the auxiliary manifests. It holds no per-video state.
type Engine struct {
	config  innertube.Config
	players *playerjs.Resolver
	logger  zerolog.Logger
	now     func() time.Time
}

func NewEngine(config innertube.Config, logger zerolog.Logger) *Engine {
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	return &Engine{
		config:  config,
		players: playerjs.NewResolver(config.HTTPClient, config, logger.With().Str("component", "playerjs").Logger()),
		logger:  logger,
		now:     time.Now,
	}
}

// Options are the per-call settings of a resolution.
type Options struct {
	// Lang is the interface language sent as hl. Empty means innertube.DefaultLang.
	Lang string
	// Headers are added to every upstream request of the call.
	Headers http.Header
	// HTTPClient overrides the configured client for this call.
	HTTPClient *http.Client
	// ConfigBody, when set, is used as the watch payload and no watch
	// request is made.
	ConfigBody []byte
	// Debug logs every deciphered format.
	Debug bool
}

func (o Options) lang() string {
	if o.Lang == "" {
		return innertube.DefaultLang
	}
	return o.Lang
}

func (e *Engine) httpClient(opts Options) *http.Client {
	if opts.HTTPClient != nil {
		return opts.HTTPClient
	}
	return e.config.HTTPClient
}

func (e *Engine) headers(opts Options) http.Header {
	h := make(http.Header)
	h.Set("User-Agent", e.config.ResolvedUserAgent())
	for _, src := range []http.Header{e.config.RequestHeaders, opts.Headers} {
		for k, values := range src {
			h.Del(k)
			for _, v := range values {
				h.Add(k, v)
			}
		}
	}
	return h
}
