package client

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/famomatic/ytinfo/internal/innertube"
)

// Config holds configuration for the info client.
type Config struct {
	// HTTPClient is the client used for making requests.
	// If nil, a client honoring ProxyURL (or http.DefaultClient) is used.
	HTTPClient *http.Client

	// ProxyURL is the optional proxy URL to use for requests.
	// If HTTPClient is provided, this field is ignored.
	ProxyURL string

	// Cache memoizes info results. If nil, every call resolves afresh.
	Cache Cache

	// Logger receives structured diagnostics. If nil, the package logger
	// from internal/log is used.
	Logger *zerolog.Logger

	// BaseURL overrides the watch page host (default: https://www.youtube.com).
	BaseURL string

	// UserAgent overrides the desktop User-Agent sent upstream.
	UserAgent string

	// RequestHeaders are added to every upstream request.
	RequestHeaders http.Header

	// PlayerJSPreferredLocale controls canonical locale for player JS fetch path.
	// Default is "en_US". Fetch falls back to the original watch-page locale path.
	PlayerJSPreferredLocale string

	// RequestTimeout bounds a whole operation when the caller's context has
	// no deadline. Zero disables it.
	RequestTimeout time.Duration
}

func (c Config) toInnerTubeConfig() innertube.Config {
	return innertube.Config{
		HTTPClient:              c.HTTPClient,
		BaseURL:                 c.BaseURL,
		UserAgent:               c.UserAgent,
		RequestHeaders:          cloneHeader(c.RequestHeaders),
		PlayerJSPreferredLocale: c.PlayerJSPreferredLocale,
		RequestTimeout:          c.RequestTimeout,
	}
}

// Options are the per-call settings of GetBasicInfo and GetFullInfo.
type Options struct {
	// Lang is a BCP-47 interface language. Empty means "en".
	Lang string

	// RequestOptions are passed through to the transport.
	RequestOptions RequestOptions

	// ConfigBody is a pre-fetched watch payload. When set, no watch
	// request is made.
	ConfigBody []byte

	// Debug logs every deciphered format.
	Debug bool
}

// RequestOptions are transport settings for a single call.
type RequestOptions struct {
	Headers  http.Header
	ProxyURL string
}

func mergeOptions(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}
