package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/playerjs"
	"github.com/famomatic/ytinfo/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

const (
	testVideoID   = "dQw4w9WgXcQ"
	testPlayerURL = "/s/player/abcd1234/player_ias.vflset/en_US/base.js"
	dashURL       = "https://manifest.example/api/manifest/dash/id/1"
	hlsURL        = "https://manifest.example/api/manifest/hls_variant/id/1"

	testPlayerJS = `var _yt_player={};(function(g){
var Xy={Ab:function(a){a.reverse()},
Cd:function(a,b){a.splice(0,b)}};
Zz=function(a){a=a.split("");Xy.Ab(a,0);Xy.Cd(a,1);return a.join("")};
Nq=function(a){return a.slice(1)};
function Wk(a){var b;(b=a.get("n"))&&(b=Nq(b),a.set("n",b))}
})(_yt_player);`

	testMPD = `<?xml version="1.0"?><MPD><Period><AdaptationSet>
<Representation id="137"/><Representation id="140"/>
</AdaptationSet></Period></MPD>`

	testM3U8 = "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1\nhttps://manifest.example/api/manifest/hls_playlist/id/1/itag/140/a.m3u8\n#EXT-X-STREAM-INF:BANDWIDTH=2\nhttps://manifest.example/api/manifest/hls_playlist/id/1/itag/93/b.m3u8\n"
)

func playerResponse() map[string]any {
	return map[string]any{
		"playabilityStatus": map[string]any{"status": "OK"},
		"videoDetails": map[string]any{
			"videoId":          testVideoID,
			"title":            "Test video",
			"lengthSeconds":    "212",
			"viewCount":        "1000",
			"author":           "Uploader",
			"channelId":        "UCuploader",
			"shortDescription": "desc",
			"keywords":         []any{"a", "b"},
		},
		"microformat": map[string]any{
			"playerMicroformatRenderer": map[string]any{
				"publishDate":  "2009-10-25",
				"uploadDate":   "2009-10-24",
				"category":     "Music",
				"isFamilySafe": true,
			},
		},
		"streamingData": map[string]any{
			"formats": []any{map[string]any{
				"itag":          18,
				"url":           "https://r.example/videoplayback?itag=18&n=12345",
				"mimeType":      `video/mp4; codecs="avc1.42001E, mp4a.40.2"`,
				"contentLength": "100",
				"height":        360,
			}},
			"adaptiveFormats": []any{map[string]any{
				"itag":            137,
				"mimeType":        `video/mp4; codecs="avc1.640028"`,
				"signatureCipher": url.Values{"s": {"abcdef"}, "sp": {"sig"}, "url": {"https://r.example/videoplayback?itag=137"}}.Encode(),
				"height":          1080,
			}},
			"dashManifestUrl": dashURL,
			"hlsManifestUrl":  hlsURL,
		},
	}
}

// watchBody renders a watch payload in the platform's pbj=1 shape.
func watchBody(t *testing.T, pr map[string]any) string {
	t.Helper()
	parts := []any{
		map[string]any{"page": "watch"},
		map[string]any{
			"player":         map[string]any{"assets": map[string]any{"js": testPlayerURL}, "args": map[string]any{}},
			"playerResponse": pr,
		},
	}
	b, err := json.Marshal(parts)
	require.NoError(t, err)
	return ")]}'\n" + string(b)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

type fakeUpstream struct {
	watch    string
	dash     string
	hls      string
	hlsCode  int
	requests atomic.Int32
	player   atomic.Int32
}

func (f *fakeUpstream) client(t *testing.T) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		f.requests.Add(1)
		switch {
		case r.URL.Path == "/watch":
			assert.Equal(t, testVideoID, r.URL.Query().Get("v"))
			assert.Equal(t, "1", r.URL.Query().Get("pbj"))
			assert.Equal(t, innertube.WebClientName, r.Header.Get("x-youtube-client-name"))
			return respond(http.StatusOK, f.watch), nil
		case strings.HasPrefix(r.URL.Path, "/s/player/"):
			f.player.Add(1)
			return respond(http.StatusOK, testPlayerJS), nil
		case strings.Contains(r.URL.Path, "/manifest/dash/"):
			return respond(http.StatusOK, f.dash), nil
		case strings.Contains(r.URL.Path, "/manifest/hls_variant/"):
			code := f.hlsCode
			if code == 0 {
				code = http.StatusOK
			}
			return respond(code, f.hls), nil
		}
		t.Errorf("unexpected request %s", r.URL)
		return respond(http.StatusNotFound, ""), nil
	})}
}

func newTestEngine(t *testing.T, up *fakeUpstream) *Engine {
	e := NewEngine(innertube.Config{HTTPClient: up.client(t), BaseURL: "https://www.youtube.com"}, zerolog.Nop())
	e.now = func() time.Time { return time.Unix(1700000000, 0) }
	return e
}

func formatURLs(list []types.Format) map[string]string {
	out := make(map[string]string, len(list))
	for _, f := range list {
		out[f.ID] = f.URL
	}
	return out
}

func TestGetBasicInfo(t *testing.T) {
	up := &fakeUpstream{watch: watchBody(t, playerResponse())}
	info, err := newTestEngine(t, up).GetBasicInfo(context.Background(), testVideoID, Options{})
	require.NoError(t, err)

	assert.False(t, info.Full)
	assert.Equal(t, testPlayerURL, info.HTML5Player)
	require.Len(t, info.Formats, 2)
	assert.Equal(t, "18", info.Formats[0].ID)
	assert.Equal(t, "137", info.Formats[1].ID)
	assert.Empty(t, info.Formats[1].URL)

	d := info.Details
	assert.Equal(t, "Test video", d.Title)
	assert.Equal(t, int64(212), d.LengthSeconds)
	assert.Equal(t, int64(1000), d.ViewCount)
	assert.Equal(t, "Uploader", d.Author.Name)
	assert.Equal(t, "https://www.youtube.com/watch?v="+testVideoID, d.VideoURL)
	assert.Equal(t, "2009-10-25", d.PublishDate)
	assert.False(t, d.AgeRestricted)
	assert.NotNil(t, info.PlayerResponse)
	assert.Equal(t, "OK", info.RawPlayerResponse["playabilityStatus"].(map[string]any)["status"])
	assert.EqualValues(t, 1, up.requests.Load())
}

func TestGetBasicInfoConfigBodySkipsNetwork(t *testing.T) {
	up := &fakeUpstream{}
	body := []byte(watchBody(t, playerResponse()))

	info, err := newTestEngine(t, up).GetBasicInfo(context.Background(), testVideoID, Options{ConfigBody: body})
	require.NoError(t, err)
	assert.Equal(t, "Test video", info.Details.Title)
	assert.Zero(t, up.requests.Load())
}

func TestGetBasicInfoEmbeddedPlayerResponseString(t *testing.T) {
	encoded, err := json.Marshal(playerResponse())
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{
		"player": map[string]any{"args": map[string]any{"player_response": string(encoded), "is_embed": "1"}},
	})
	require.NoError(t, err)

	info, err := newTestEngine(t, &fakeUpstream{}).GetBasicInfo(context.Background(), testVideoID, Options{ConfigBody: body})
	require.NoError(t, err)
	assert.Equal(t, "Test video", info.Details.Title)
	assert.True(t, info.Details.AgeRestricted)
	assert.Empty(t, info.HTML5Player)
}

func TestGetBasicInfoNoStreamingData(t *testing.T) {
	pr := playerResponse()
	delete(pr, "streamingData")

	info, err := newTestEngine(t, &fakeUpstream{watch: watchBody(t, pr)}).GetBasicInfo(context.Background(), testVideoID, Options{})
	require.NoError(t, err)
	assert.NotNil(t, info.Formats)
	assert.Empty(t, info.Formats)
}

func TestGetBasicInfoUnplayable(t *testing.T) {
	pr := playerResponse()
	pr["playabilityStatus"] = map[string]any{"status": "UNPLAYABLE", "reason": "<b>Private video</b>"}

	_, err := newTestEngine(t, &fakeUpstream{watch: watchBody(t, pr)}).GetBasicInfo(context.Background(), testVideoID, Options{})

	var pe *types.PlayabilityError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Private video", err.Error())
	assert.True(t, pe.IsPrivate())
}

func TestGetBasicInfoLoginRequiredIsNotFatal(t *testing.T) {
	pr := playerResponse()
	pr["playabilityStatus"] = map[string]any{"status": "LOGIN_REQUIRED", "reason": "Sign in"}

	_, err := newTestEngine(t, &fakeUpstream{watch: watchBody(t, pr)}).GetBasicInfo(context.Background(), testVideoID, Options{})
	require.NoError(t, err)
}

func TestGetBasicInfoParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		stage string
	}{
		{name: "syntax", body: `)]}'{"player":`, stage: "config"},
		{name: "scalar", body: `[1]`, stage: "config"},
		{name: "missing", body: `{"page":"watch"}`, stage: "player_response"},
		{name: "bad string", body: `{"player_response":"{not json"}`, stage: "player_response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEngine(t, &fakeUpstream{}).GetBasicInfo(context.Background(), testVideoID, Options{ConfigBody: []byte(tt.body)})
			var pe *types.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.stage, pe.Stage)
		})
	}
}

func TestGetBasicInfoHTTPStatus(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return respond(http.StatusTooManyRequests, "slow down"), nil
	})}
	e := NewEngine(innertube.Config{HTTPClient: client}, zerolog.Nop())

	_, err := e.GetBasicInfo(context.Background(), testVideoID, Options{})
	var se *types.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
}

func TestGetFullInfoMergesManifests(t *testing.T) {
	up := &fakeUpstream{watch: watchBody(t, playerResponse()), dash: testMPD, hls: testM3U8}
	e := newTestEngine(t, up)

	info, err := e.GetFullInfo(context.Background(), testVideoID, Options{})
	require.NoError(t, err)
	assert.True(t, info.Full)

	urls := formatURLs(info.Formats)
	require.Len(t, urls, 4)
	assert.Equal(t, dashURL, urls["140"])
	assert.Equal(t, "https://manifest.example/api/manifest/hls_playlist/id/1/itag/93/b.m3u8", urls["93"])

	sig, err := url.Parse(urls["137"])
	require.NoError(t, err)
	assert.Equal(t, "edcba", sig.Query().Get("sig"))

	muxed, err := url.Parse(urls["18"])
	require.NoError(t, err)
	assert.Equal(t, "2345", muxed.Query().Get("n"))

	// Manifest entry points sort first, HLS before DASH.
	assert.Equal(t, "93", info.Formats[0].ID)
	assert.True(t, info.Formats[0].IsHLS)
	assert.EqualValues(t, 1, up.player.Load())
}

func TestCompleteInfoLeavesBasicUntouched(t *testing.T) {
	up := &fakeUpstream{watch: watchBody(t, playerResponse()), dash: testMPD, hls: testM3U8}
	e := newTestEngine(t, up)
	ctx := context.Background()

	basic, err := e.GetBasicInfo(ctx, testVideoID, Options{})
	require.NoError(t, err)
	before := append([]types.Format(nil), basic.Formats...)

	full, err := e.CompleteInfo(ctx, basic, Options{})
	require.NoError(t, err)

	assert.False(t, basic.Full)
	assert.Equal(t, before, basic.Formats)
	assert.NotSame(t, basic, full)
}

func TestCompleteInfoUnavailable(t *testing.T) {
	pr := playerResponse()
	pr["streamingData"] = map[string]any{}
	up := &fakeUpstream{watch: watchBody(t, pr)}

	_, err := newTestEngine(t, up).GetFullInfo(context.Background(), testVideoID, Options{})
	require.ErrorIs(t, err, types.ErrVideoUnavailable)
	assert.Zero(t, up.player.Load())
}

func TestCompleteInfoOnlyHLS(t *testing.T) {
	pr := playerResponse()
	pr["streamingData"] = map[string]any{"hlsManifestUrl": hlsURL}
	up := &fakeUpstream{watch: watchBody(t, pr), hls: testM3U8}

	info, err := newTestEngine(t, up).GetFullInfo(context.Background(), testVideoID, Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"140": "https://manifest.example/api/manifest/hls_playlist/id/1/itag/140/a.m3u8",
		"93":  "https://manifest.example/api/manifest/hls_playlist/id/1/itag/93/b.m3u8",
	}, formatURLs(info.Formats))
}

func TestCompleteInfoManifestFailureFailsOperation(t *testing.T) {
	up := &fakeUpstream{watch: watchBody(t, playerResponse()), dash: testMPD, hls: "gone", hlsCode: http.StatusGone}

	_, err := newTestEngine(t, up).GetFullInfo(context.Background(), testVideoID, Options{})
	var se *types.HTTPStatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusGone, se.StatusCode)
}

func TestCompleteInfoMalformedDASH(t *testing.T) {
	up := &fakeUpstream{watch: watchBody(t, playerResponse()), dash: "<MPD><Period>", hls: testM3U8}

	_, err := newTestEngine(t, up).GetFullInfo(context.Background(), testVideoID, Options{})
	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "dash", pe.Stage)
}

func TestCompleteInfoNTransformWithoutPlayer(t *testing.T) {
	pr := playerResponse()
	pr["streamingData"] = map[string]any{"formats": []any{map[string]any{
		"itag":     18,
		"url":      "https://r.example/videoplayback?itag=18&n=12345",
		"mimeType": `video/mp4; codecs="avc1.42001E, mp4a.40.2"`,
	}}}
	b, err := json.Marshal(map[string]any{"playerResponse": pr})
	require.NoError(t, err)
	up := &fakeUpstream{}

	_, err = newTestEngine(t, up).GetFullInfo(context.Background(), testVideoID, Options{ConfigBody: b})
	var de *playerjs.DecipherError
	require.ErrorAs(t, err, &de)
	assert.Zero(t, up.requests.Load())
}

func TestCompleteInfoPlainURLsWithoutPlayer(t *testing.T) {
	pr := playerResponse()
	pr["streamingData"] = map[string]any{"formats": []any{map[string]any{
		"itag": 18,
		"url":  "https://r.example/videoplayback?itag=18",
	}}}
	b, err := json.Marshal(map[string]any{"playerResponse": pr})
	require.NoError(t, err)

	info, err := newTestEngine(t, &fakeUpstream{}).GetFullInfo(context.Background(), testVideoID, Options{ConfigBody: b})
	require.NoError(t, err)
	assert.True(t, info.Full)
	assert.Equal(t, "https://r.example/videoplayback?itag=18", info.Formats[0].URL)
}
