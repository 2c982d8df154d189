package playerjs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/types"
)

func TestGetPlayerJSNormalizesLocaleAndCaches(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/s/player/1798f86c/player_es6.vflset/en_US/base.js" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok-js"))
	}))
	defer srv.Close()

	resolver := NewResolver(srv.Client(), innertube.Config{BaseURL: srv.URL, PlayerJSPreferredLocale: "en_US"}, zerolog.Nop())
	ctx := context.Background()

	got, err := resolver.GetPlayerJS(ctx, "/s/player/1798f86c/player_es6.vflset/ko_KR/base.js")
	require.NoError(t, err)
	assert.Equal(t, "ok-js", got)

	got, err = resolver.GetPlayerJS(ctx, srv.URL+"/s/player/1798f86c/player_es6.vflset/ja_JP/base.js")
	require.NoError(t, err)
	assert.Equal(t, "ok-js", got)
	assert.EqualValues(t, 1, requests.Load())
}

func TestGetTokensCachesParsedPlayer(t *testing.T) {
	js := loadFixture(t, "synthetic_basejs_fixture.js")
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "ytinfo-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(js))
	}))
	defer srv.Close()

	resolver := NewResolver(srv.Client(), innertube.Config{BaseURL: srv.URL, UserAgent: "ytinfo-test"}, zerolog.Nop())

	first, err := resolver.GetTokens(context.Background(), "/s/player/abcd1234/player_ias.vflset/en_US/base.js")
	require.NoError(t, err)
	second, err := resolver.GetTokens(context.Background(), "/s/player/abcd1234/player_ias.vflset/de_DE/base.js")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, requests.Load())
}

func TestGetPlayerJSStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resolver := NewResolver(srv.Client(), innertube.Config{BaseURL: srv.URL}, zerolog.Nop())
	_, err := resolver.GetPlayerJS(context.Background(), "/s/player/x/base.js")

	var se *types.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
}

func TestGetTokensRequiresReference(t *testing.T) {
	resolver := NewResolver(nil, innertube.Config{}, zerolog.Nop())
	_, err := resolver.GetTokens(context.Background(), " ")

	var de *DecipherError
	require.ErrorAs(t, err, &de)
}
