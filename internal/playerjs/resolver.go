package playerjs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/famomatic/ytinfo/internal/cache"
	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/types"
)

const defaultPlayerLocale = "en_US"

var (
	playerPathPattern = regexp.MustCompile(`^/s/player/([A-Za-z0-9_-]+)/(.+)$`)
	localePathPattern = regexp.MustCompile(`(?i)(player(?:_[a-z0-9]+)?\.vflset)/[a-z]{2,3}_[a-z]{2,3}/base\.js$`)
	nonAlnumPattern   = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// Resolver downloads player scripts and turns them into Tokens. Both the raw
// script and the parsed Tokens are cached per player build, so every video
// served by the same build shares one download and one parse.
type Resolver struct {
	client *http.Client
	config innertube.Config
	bodies cache.Store[string]
	tokens cache.Store[*Tokens]
	logger zerolog.Logger
}

func NewResolver(client *http.Client, config innertube.Config, logger zerolog.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{
		client: client,
		config: config,
		bodies: cache.NewMemory[string](cache.Options{MaxEntries: 8}),
		tokens: cache.NewMemory[*Tokens](cache.Options{MaxEntries: 8}),
		logger: logger,
	}
}

// GetTokens returns the decipher tokens of the player script at playerURL,
// which may be absolute or relative to the configured base URL.
func (r *Resolver) GetTokens(ctx context.Context, playerURL string) (*Tokens, error) {
	if strings.TrimSpace(playerURL) == "" {
		return nil, &DecipherError{Err: fmt.Errorf("no player script reference")}
	}
	key := r.cacheKey(r.normalizePlayerPath(playerURL))
	if t, ok := r.tokens.Get(key).Get(); ok {
		return t, nil
	}

	js, err := r.GetPlayerJS(ctx, playerURL)
	if err != nil {
		return nil, err
	}
	t, err := ParseTokens(playerURL, js)
	if err != nil {
		return nil, err
	}
	r.tokens.Set(key, t)
	return t, nil
}

// GetPlayerJS fetches the player script, trying the locale-normalised path
// first and the path as given second.
func (r *Resolver) GetPlayerJS(ctx context.Context, playerURL string) (string, error) {
	normalized := r.normalizePlayerPath(playerURL)
	key := r.cacheKey(normalized)
	if body, ok := r.bodies.Get(key).Get(); ok {
		return body, nil
	}

	candidates := []string{normalized}
	if playerURL != normalized {
		candidates = append(candidates, playerURL)
	}

	var lastErr error
	for _, candidate := range candidates {
		body, err := r.fetch(ctx, candidate)
		if err != nil {
			r.logger.Debug().Err(err).Str("player", candidate).Msg("player script fetch failed")
			lastErr = err
			continue
		}
		r.bodies.Set(key, body)
		return body, nil
	}
	return "", lastErr
}

func (r *Resolver) fetch(ctx context.Context, playerURL string) (string, error) {
	target := playerURL
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = r.config.ResolvedBaseURL() + playerURL
	}

	if r.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.RequestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.config.ResolvedUserAgent())
	for k, values := range r.config.RequestHeaders {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch player script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", &types.HTTPStatusError{URL: target, StatusCode: resp.StatusCode, Snippet: strings.TrimSpace(string(snippet))}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read player script: %w", err)
	}
	return string(body), nil
}

// normalizePlayerPath strips scheme and host and pins the locale segment so
// that localized copies of one build share a cache entry.
func (r *Resolver) normalizePlayerPath(playerURL string) string {
	if u, err := url.Parse(playerURL); err == nil && u.Path != "" {
		playerURL = u.Path
	}
	locale := r.config.PlayerJSPreferredLocale
	if locale == "" {
		locale = defaultPlayerLocale
	}
	return localePathPattern.ReplaceAllString(playerURL, "${1}/"+locale+"/base.js")
}

func (r *Resolver) cacheKey(playerPath string) string {
	m := playerPathPattern.FindStringSubmatch(playerPath)
	if len(m) < 3 {
		return playerPath
	}
	return m[1] + ":" + nonAlnumPattern.ReplaceAllString(m[2], "_")
}
