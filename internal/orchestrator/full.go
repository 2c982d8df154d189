package orchestrator

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/famomatic/ytinfo/internal/formats"
	"github.com/famomatic/ytinfo/internal/metrics"
	"github.com/famomatic/ytinfo/internal/playerjs"
	"github.com/famomatic/ytinfo/internal/types"
)

// GetFullInfo fetches the basic record of a video and completes it.
func (e *Engine) GetFullInfo(ctx context.Context, videoID string, opts Options) (*types.VideoInfo, error) {
	basic, err := e.GetBasicInfo(ctx, videoID, opts)
	if err != nil {
		return nil, err
	}
	return e.CompleteInfo(ctx, basic, opts)
}

// CompleteInfo deciphers the primary formats of a basic record, merges in
// the DASH and HLS manifests and returns the enriched, sorted result as a
// new record. The basic record is not modified.
func (e *Engine) CompleteInfo(ctx context.Context, basic *types.VideoInfo, opts Options) (*types.VideoInfo, error) {
	info := basic.Clone()

	var dashURL, hlsURL string
	if info.PlayerResponse != nil {
		dashURL, hlsURL = info.PlayerResponse.StreamingData.ManifestURLs()
	}
	if len(info.Formats) == 0 && dashURL == "" && hlsURL == "" {
		return nil, types.ErrVideoUnavailable
	}

	var tokens *playerjs.Tokens
	if info.HTML5Player != "" || needsPlayer(info.Formats) {
		t, err := e.players.GetTokens(ctx, info.HTML5Player)
		if err != nil {
			return nil, err
		}
		tokens = t
	}
	deciphered, err := playerjs.DecipherFormats(info.Formats, tokens, opts.Debug, e.logger)
	if err != nil {
		return nil, err
	}

	client, headers := e.httpClient(opts), e.headers(opts)
	var (
		g         errgroup.Group
		dash, hls *formats.StubSet
	)
	if dashURL != "" {
		g.Go(func() (err error) {
			dash, err = e.fetchManifest(ctx, "dash", e.resolveReference(dashURL), client, headers, formats.FetchDASH)
			return err
		})
	}
	if hlsURL != "" {
		g.Go(func() (err error) {
			hls, err = e.fetchManifest(ctx, "hls", e.resolveReference(hlsURL), client, headers, formats.FetchHLS)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := formats.Merge(deciphered, dash, hls)
	for i := range merged {
		merged[i] = formats.AddFormatMeta(merged[i])
	}
	formats.Sort(merged)

	info.Formats = merged
	info.Full = true
	return info, nil
}

type manifestFetcher func(context.Context, *http.Client, string, http.Header) (*formats.StubSet, error)

func (e *Engine) fetchManifest(ctx context.Context, kind, manifestURL string, client *http.Client, headers http.Header, fetch manifestFetcher) (*formats.StubSet, error) {
	start := time.Now()
	set, err := fetch(ctx, client, manifestURL, headers)
	metrics.ManifestFetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	metrics.ManifestFetchesTotal.WithLabelValues(kind, metrics.Outcome(err)).Inc()

	if err != nil {
		e.logger.Debug().Err(err).Str("kind", kind).Str("url", manifestURL).Msg("manifest fetch failed")
		return nil, err
	}
	e.logger.Debug().Str("kind", kind).Int("formats", set.Len()).Dur("took", time.Since(start)).Msg("manifest fetched")
	return set, nil
}

// needsPlayer reports whether any format carries a signature cipher or an
// "n" value that only the player script can transform.
func needsPlayer(list []types.Format) bool {
	for _, f := range list {
		if f.URL == "" && (f.SignatureCipher != "" || f.Cipher != "") {
			return true
		}
		if u, err := url.Parse(f.URL); err == nil && u.Query().Get("n") != "" {
			return true
		}
	}
	return false
}
