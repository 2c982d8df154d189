package formats

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/famomatic/ytinfo/internal/types"
)

var videoCodecRank = []string{"mp4v", "avc1", "Sorenson H.263", "MPEG-4 Visual", "vp8", "vp9", "av01"}

var audioCodecRank = []string{"mp4a", "mp3", "vorbis", "aac", "opus", "flac"}

// sortKeys are compared in order, higher values first.
var sortKeys = []func(types.Format) int{
	func(f types.Format) int { return boolRank(f.IsHLS) },
	func(f types.Format) int { return boolRank(f.IsDashMPD) },
	func(f types.Format) int { return boolRank(f.ContentLength > 0) },
	func(f types.Format) int { return boolRank(f.HasVideo && f.HasAudio) },
	func(f types.Format) int { return boolRank(f.HasVideo) },
	resolution,
	func(f types.Format) int { return f.AudioBitrate },
	func(f types.Format) int { return f.Bitrate },
	func(f types.Format) int { return codecRank(videoCodecRank, f.VideoCodec) },
	func(f types.Format) int { return codecRank(audioCodecRank, f.AudioCodec) },
}

// SortFormats orders formats best first. Manifest entry points come before
// concrete streams, then sized streams, muxed audio+video, video, resolution,
// audio bitrate, overall bitrate and finally codec preference.
// It returns a negative number when a sorts before b.
func SortFormats(a, b types.Format) int {
	for _, key := range sortKeys {
		if c := cmp.Compare(key(b), key(a)); c != 0 {
			return c
		}
	}
	return 0
}

// Sort sorts formats in place with SortFormats, keeping the relative order
// of equivalent formats.
func Sort(formats []types.Format) {
	slices.SortStableFunc(formats, SortFormats)
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

func resolution(f types.Format) int {
	if f.Height > 0 {
		return f.Height
	}
	label := strings.TrimSpace(f.QualityLabel)
	if i := strings.IndexByte(label, 'p'); i > 0 {
		label = label[:i]
	}
	n, err := strconv.Atoi(label)
	if err != nil {
		return 0
	}
	return n
}

// codecRank returns 1+index of the first rank entry the codec starts with,
// or 0 for unknown codecs.
func codecRank(ranks []string, codec string) int {
	if codec == "" {
		return 0
	}
	for i, prefix := range ranks {
		if strings.HasPrefix(codec, prefix) {
			return i + 1
		}
	}
	return 0
}
