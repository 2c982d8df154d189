// Package client resolves video info records: metadata plus the stream
// format list, optionally completed with deciphered URLs and the formats of
// the DASH and HLS manifests. Results are memoized in a caller-owned Cache.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/famomatic/ytinfo/internal/cache"
	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/metrics"
	"github.com/famomatic/ytinfo/internal/orchestrator"
	"github.com/famomatic/ytinfo/internal/types"
)

// Operation names, also used as the first component of cache keys.
const (
	OperationBasicInfo = "getBasicInfo"
	OperationFullInfo  = "getFullInfo"
)

// Client is the info client. It is safe for concurrent use.
type Client struct {
	config Config
	engine *orchestrator.Engine
	cache  Cache
	logger zerolog.Logger

	// proxies holds one *http.Client per per-call proxy URL.
	proxies sync.Map
}

// New creates a new info client.
func New(config Config) *Client {
	if config.HTTPClient == nil {
		config.HTTPClient = defaultHTTPClient(config.ProxyURL)
	}
	store := config.Cache
	if store == nil {
		store = cache.Noop[*VideoInfo]{}
	}
	logger := resolveLogger(config)

	return &Client{
		config: config,
		engine: orchestrator.NewEngine(config.toInnerTubeConfig(), logger),
		cache:  store,
		logger: logger,
	}
}

// GetBasicInfo returns the metadata and primary format list of a video.
// input is a video id or URL. Formats are not deciphered.
func (c *Client) GetBasicInfo(ctx context.Context, input string, opts ...Options) (*VideoInfo, error) {
	o := mergeOptions(opts)
	call, err := c.prepare(input, o)
	if err != nil {
		return nil, err
	}
	return c.memoize(ctx, OperationBasicInfo, call, func(ctx context.Context) (*VideoInfo, error) {
		return c.engine.GetBasicInfo(ctx, call.videoID, call.engineOpts)
	})
}

// GetFullInfo returns the basic record completed with deciphered formats
// and the formats advertised by the DASH and HLS manifests.
func (c *Client) GetFullInfo(ctx context.Context, input string, opts ...Options) (*VideoInfo, error) {
	o := mergeOptions(opts)
	call, err := c.prepare(input, o)
	if err != nil {
		return nil, err
	}
	return c.memoize(ctx, OperationFullInfo, call, func(ctx context.Context) (*VideoInfo, error) {
		basic, err := c.GetBasicInfo(ctx, call.videoID, o)
		if err != nil {
			return nil, err
		}
		return c.engine.CompleteInfo(ctx, basic, call.engineOpts)
	})
}

type preparedCall struct {
	videoID    string
	lang       string
	engineOpts orchestrator.Options
}

func (c *Client) prepare(input string, o Options) (preparedCall, error) {
	id, err := GetVideoID(input)
	if err != nil {
		return preparedCall{}, err
	}
	lang, err := canonicalLang(o.Lang)
	if err != nil {
		return preparedCall{}, err
	}

	httpClient, err := c.proxyClient(o.RequestOptions.ProxyURL)
	if err != nil {
		return preparedCall{}, err
	}

	return preparedCall{
		videoID: id,
		lang:    lang,
		engineOpts: orchestrator.Options{
			Lang:       lang,
			Headers:    cloneHeader(o.RequestOptions.Headers),
			HTTPClient: httpClient,
			ConfigBody: o.ConfigBody,
			Debug:      o.Debug,
		},
	}, nil
}

// proxyClient returns the shared client routing through proxyURL, or nil
// when proxyURL is empty.
func (c *Client) proxyClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return nil, nil
	}
	if hc, ok := c.proxies.Load(proxyURL); ok {
		return hc.(*http.Client), nil
	}
	hc, err := proxiedHTTPClient(proxyURL)
	if err != nil {
		return nil, err
	}
	actual, _ := c.proxies.LoadOrStore(proxyURL, hc)
	return actual.(*http.Client), nil
}

// memoize serves op from the cache or runs resolve and stores a successful
// result. Concurrent misses on one key each resolve independently.
func (c *Client) memoize(ctx context.Context, op string, call preparedCall, resolve func(context.Context) (*VideoInfo, error)) (*VideoInfo, error) {
	key := cache.Key(op, call.videoID, call.lang)
	if info, ok := c.cache.Get(key).Get(); ok {
		metrics.CacheLookupsTotal.WithLabelValues(op, "hit").Inc()
		c.logger.Debug().Str("operation", op).Str("key", key).Msg("cache hit")
		return info, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues(op, "miss").Inc()

	ctx, cancel := withDefaultTimeout(types.WithOperation(ctx, op), c.config.RequestTimeout)
	defer cancel()

	info, err := resolve(ctx)
	metrics.InfoRequestsTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
	if err != nil {
		c.logger.Debug().Err(err).Str("operation", op).Str("video_id", call.videoID).Msg("info resolution failed")
		return nil, err
	}
	c.cache.Set(key, info)
	return info, nil
}

func canonicalLang(lang string) (string, error) {
	if lang == "" {
		return innertube.DefaultLang, nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", &ValidationError{Input: lang, Reason: "invalid_lang", Err: fmt.Errorf("parse language: %w", err)}
	}
	return tag.String(), nil
}
