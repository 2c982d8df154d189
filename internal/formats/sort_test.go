package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/famomatic/ytinfo/internal/types"
)

func ids(formats []types.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = f.ID
	}
	return out
}

func TestSortManifestsFirst(t *testing.T) {
	list := []types.Format{
		{ID: "plain", HasVideo: true, HasAudio: true, ContentLength: 10, Height: 1080},
		{ID: "dash", IsDashMPD: true},
		{ID: "hls", IsHLS: true},
	}
	Sort(list)
	assert.Equal(t, []string{"hls", "dash", "plain"}, ids(list))
}

func TestSortByKindThenResolution(t *testing.T) {
	list := []types.Format{
		{ID: "audio", HasAudio: true, ContentLength: 1, AudioBitrate: 160},
		{ID: "v720", HasVideo: true, ContentLength: 1, Height: 720},
		{ID: "muxed", HasVideo: true, HasAudio: true, ContentLength: 1, Height: 360},
		{ID: "v1080", HasVideo: true, ContentLength: 1, QualityLabel: "1080p"},
		{ID: "unsized", HasVideo: true, HasAudio: true, Height: 2160},
	}
	Sort(list)
	assert.Equal(t, []string{"muxed", "v1080", "v720", "audio", "unsized"}, ids(list))
}

func TestSortCodecPreference(t *testing.T) {
	a := types.Format{ID: "a", HasVideo: true, Height: 720, VideoCodec: "avc1.4d401f"}
	b := types.Format{ID: "b", HasVideo: true, Height: 720, VideoCodec: "vp9"}
	assert.Positive(t, SortFormats(a, b))
	assert.Negative(t, SortFormats(b, a))
	assert.Zero(t, SortFormats(a, a))
}

func TestSortIsStable(t *testing.T) {
	list := []types.Format{{ID: "x"}, {ID: "y"}, {ID: "z"}}
	Sort(list)
	assert.Equal(t, []string{"x", "y", "z"}, ids(list))
}

func TestSortFormatsDoesNotAllocate(t *testing.T) {
	a := types.Format{ID: "137", Height: 1080, HasVideo: true, VideoCodec: "avc1.640028", Bitrate: 4000000}
	b := types.Format{ID: "248", QualityLabel: "1080p", HasVideo: true, VideoCodec: "vp9", Bitrate: 2500000}

	allocs := testing.AllocsPerRun(100, func() {
		SortFormats(a, b)
	})
	assert.Zero(t, allocs)
}
