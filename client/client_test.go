package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/famomatic/ytinfo/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const testVideoID = "jNQXAC9IVRw"

func watchPayload(t *testing.T, status string) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"playerResponse": map[string]any{
			"playabilityStatus": map[string]any{"status": status, "reason": "<b>Private video</b>"},
			"videoDetails":      map[string]any{"videoId": testVideoID, "title": "Me at the zoo", "author": "jawed"},
			"streamingData": map[string]any{
				"formats": []any{map[string]any{"itag": 18, "url": "https://r.example/videoplayback?itag=18", "mimeType": `video/mp4; codecs="avc1.42001E, mp4a.40.2"`}},
			},
		},
	})
	require.NoError(t, err)
	return ")]}'\n" + string(b)
}

type upstream struct {
	watchCalls atomic.Int32
	langs      chan string
	status     func(call int32) int
	playStatus string
}

func (u *upstream) httpClient(t *testing.T) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/watch" {
			t.Errorf("unexpected request %s", r.URL)
			return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader("")), Header: make(http.Header)}, nil
		}
		call := u.watchCalls.Add(1)
		if u.langs != nil {
			u.langs <- r.URL.Query().Get("hl")
		}
		code := http.StatusOK
		if u.status != nil {
			code = u.status(call)
		}
		status := u.playStatus
		if status == "" {
			status = "OK"
		}
		return &http.Response{
			StatusCode: code,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(watchPayload(t, status))),
		}, nil
	})}
}

func newTestClient(t *testing.T, up *upstream, store Cache) *Client {
	logger := zerolog.Nop()
	return New(Config{
		HTTPClient: up.httpClient(t),
		Cache:      store,
		Logger:     &logger,
		BaseURL:    "https://www.youtube.com",
	})
}

func TestGetBasicInfoCacheHitReturnsSameRecord(t *testing.T) {
	up := &upstream{}
	c := newTestClient(t, up, NewMemoryCache(0, 0))
	ctx := context.Background()
	hits := metrics.CacheLookupsTotal.WithLabelValues(OperationBasicInfo, "hit")
	before := testutil.ToFloat64(hits)

	first, err := c.GetBasicInfo(ctx, testVideoID)
	require.NoError(t, err)
	second, err := c.GetBasicInfo(ctx, "https://www.youtube.com/watch?v="+testVideoID)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, before+1, testutil.ToFloat64(hits))
	assert.False(t, first.Full)
	assert.Equal(t, "Me at the zoo", first.Details.Title)
	assert.EqualValues(t, 1, up.watchCalls.Load())
}

func TestGetBasicInfoCacheKeyIncludesLang(t *testing.T) {
	up := &upstream{langs: make(chan string, 4)}
	c := newTestClient(t, up, NewMemoryCache(0, 0))
	ctx := context.Background()

	_, err := c.GetBasicInfo(ctx, testVideoID)
	require.NoError(t, err)
	_, err = c.GetBasicInfo(ctx, testVideoID, Options{Lang: "de-de"})
	require.NoError(t, err)
	_, err = c.GetBasicInfo(ctx, testVideoID, Options{Lang: "de-DE"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, up.watchCalls.Load())
	assert.Equal(t, "en", <-up.langs)
	assert.Equal(t, "de-DE", <-up.langs)
}

func TestGetBasicInfoFailureIsNotCached(t *testing.T) {
	up := &upstream{status: func(call int32) int {
		if call == 1 {
			return http.StatusInternalServerError
		}
		return http.StatusOK
	}}
	c := newTestClient(t, up, NewMemoryCache(0, 0))
	ctx := context.Background()

	_, err := c.GetBasicInfo(ctx, testVideoID)
	var se *HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ErrorCategoryHTTPStatus, ClassifyError(err))

	info, err := c.GetBasicInfo(ctx, testVideoID)
	require.NoError(t, err)
	assert.NotNil(t, info)
	assert.EqualValues(t, 2, up.watchCalls.Load())
}

func TestGetBasicInfoUnplayable(t *testing.T) {
	up := &upstream{playStatus: "UNPLAYABLE"}
	c := newTestClient(t, up, NewMemoryCache(0, 0))

	_, err := c.GetBasicInfo(context.Background(), testVideoID)
	var pe *PlayabilityError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Private video", err.Error())
}

func TestGetFullInfoReusesMemoizedBasic(t *testing.T) {
	up := &upstream{}
	c := newTestClient(t, up, NewMemoryCache(0, 0))
	ctx := context.Background()

	basic, err := c.GetBasicInfo(ctx, testVideoID)
	require.NoError(t, err)
	full, err := c.GetFullInfo(ctx, testVideoID)
	require.NoError(t, err)
	again, err := c.GetFullInfo(ctx, testVideoID)
	require.NoError(t, err)

	assert.True(t, full.Full)
	assert.False(t, basic.Full)
	assert.Same(t, full, again)
	require.Len(t, full.Formats, 1)
	assert.True(t, full.Formats[0].HasVideo)
	assert.True(t, full.Formats[0].HasAudio)
	assert.EqualValues(t, 1, up.watchCalls.Load())
}

func TestNilCacheDisablesMemoization(t *testing.T) {
	up := &upstream{}
	c := newTestClient(t, up, nil)

	first, err := c.GetBasicInfo(context.Background(), testVideoID)
	require.NoError(t, err)
	second, err := c.GetBasicInfo(context.Background(), testVideoID)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.EqualValues(t, 2, up.watchCalls.Load())
}

func TestInvalidInputIsRejectedBeforeFetch(t *testing.T) {
	up := &upstream{}
	c := newTestClient(t, up, NewMemoryCache(0, 0))

	_, err := c.GetFullInfo(context.Background(), "https://example.com/watch?v="+testVideoID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.GetBasicInfo(context.Background(), testVideoID, Options{Lang: "not a language!"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid_lang", ve.Reason)

	_, err = c.GetBasicInfo(context.Background(), testVideoID, Options{RequestOptions: RequestOptions{ProxyURL: "::"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, up.watchCalls.Load())
}

func TestConfigBodyBypassesNetwork(t *testing.T) {
	up := &upstream{}
	c := newTestClient(t, up, nil)

	info, err := c.GetBasicInfo(context.Background(), testVideoID, Options{ConfigBody: []byte(watchPayload(t, "OK"))})
	require.NoError(t, err)
	assert.Equal(t, "jawed", info.Details.Author.Name)
	assert.Zero(t, up.watchCalls.Load())
}

func TestFutureAndCallback(t *testing.T) {
	up := &upstream{}
	c := newTestClient(t, up, NewMemoryCache(0, 0))
	ctx := context.Background()

	info, err := c.GetBasicInfoFuture(ctx, testVideoID).Collect()
	require.NoError(t, err)
	assert.Equal(t, testVideoID, info.Details.VideoID)

	type settled struct {
		info *VideoInfo
		err  error
	}
	done := make(chan settled, 1)
	Callback(c.GetFullInfoFuture(ctx, testVideoID), func(v *VideoInfo, err error) {
		done <- settled{v, err}
	})

	select {
	case s := <-done:
		require.NoError(t, s.err)
		assert.True(t, s.info.Full)
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}
}

func TestCallbackReceivesError(t *testing.T) {
	c := newTestClient(t, &upstream{}, nil)

	done := make(chan error, 1)
	Callback(c.GetBasicInfoFuture(context.Background(), "nope"), func(v *VideoInfo, err error) {
		assert.Nil(t, v)
		done <- err
	})

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, ErrInvalidInput))
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not invoked")
	}
}
