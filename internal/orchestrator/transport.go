package orchestrator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/types"
)

// watchURL builds the watch payload URL for a video.
func (e *Engine) watchURL(videoID, lang string) string {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("hl", lang)
	q.Set("bpctr", strconv.FormatInt(e.now().Unix(), 10))
	q.Set("pbj", "1")
	return e.config.ResolvedBaseURL() + "/watch?" + q.Encode()
}

// fetchWatchPayload returns the raw watch payload, either the caller
// supplied ConfigBody or the body of a watch request.
func (e *Engine) fetchWatchPayload(ctx context.Context, videoID string, opts Options) ([]byte, error) {
	if len(opts.ConfigBody) > 0 {
		return opts.ConfigBody, nil
	}

	target := e.watchURL(videoID, opts.lang())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = e.headers(opts)
	req.Header.Set("x-youtube-client-name", innertube.WebClientName)
	req.Header.Set("x-youtube-client-version", innertube.WebClientVersion)

	log := e.logger.Debug().Str("video_id", videoID)
	if op, ok := types.OperationFromContext(ctx); ok {
		log = log.Str("operation", op)
	}
	log.Str("url", target).Msg("fetching watch payload")

	resp, err := e.httpClient(opts).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch payload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &types.HTTPStatusError{URL: target, StatusCode: resp.StatusCode, Snippet: strings.TrimSpace(string(snippet))}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch payload: %w", err)
	}
	return body, nil
}

// resolveReference resolves a possibly relative manifest URL against the
// watch base URL.
func (e *Engine) resolveReference(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(e.config.ResolvedBaseURL() + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
