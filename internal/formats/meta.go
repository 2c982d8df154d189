package formats

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/famomatic/ytinfo/internal/types"
)

var (
	liveSourcePattern   = regexp.MustCompile(`\bsource[/=]yt_live_broadcast\b`)
	hlsManifestPattern  = regexp.MustCompile(`/manifest/hls_(variant|playlist)/`)
	dashManifestPattern = regexp.MustCompile(`/manifest/dash/`)
	mimeCodecsPattern   = regexp.MustCompile(`^([^/;]+)/([^;]+)(?:;\s*codecs="([^"]*)")?`)
)

// AddFormatMeta fills derived fields of a format: itag table defaults, the
// container and codec split of the mime type, stream kind flags and the
// manifest-type flags derived from the URL. It returns the enriched copy.
func AddFormatMeta(f types.Format) types.Format {
	if f.Itag == 0 {
		f.Itag = types.ItagFromID(f.ID)
	}
	if info, ok := itagTable[f.Itag]; ok {
		if f.MimeType == "" {
			f.MimeType = info.MimeType
		}
		if f.QualityLabel == "" {
			f.QualityLabel = info.QualityLabel
		}
		if f.Bitrate == 0 {
			f.Bitrate = info.Bitrate
		}
		if f.AudioBitrate == 0 {
			f.AudioBitrate = info.AudioBitrate
		}
	}

	if m := mimeCodecsPattern.FindStringSubmatch(f.MimeType); m != nil {
		kind := strings.ToLower(m[1])
		f.Container = strings.TrimSpace(m[2])
		f.Codecs = m[3]

		codecs := lo.FilterMap(strings.Split(m[3], ","), func(c string, _ int) (string, bool) {
			c = strings.TrimSpace(c)
			return c, c != ""
		})
		switch kind {
		case "video":
			if len(codecs) > 0 {
				f.VideoCodec = codecs[0]
			}
			if len(codecs) > 1 {
				f.AudioCodec = codecs[1]
			}
		case "audio":
			if len(codecs) > 0 {
				f.AudioCodec = codecs[0]
			}
		}
		f.HasVideo = kind == "video"
		f.HasAudio = kind == "audio" || f.AudioCodec != ""
	}
	if f.AudioBitrate == 0 && f.HasAudio && f.AudioQuality != "" && !f.HasVideo {
		f.AudioBitrate = f.Bitrate / 1000
	}

	f.IsLive = liveSourcePattern.MatchString(f.URL)
	f.IsHLS = hlsManifestPattern.MatchString(f.URL)
	f.IsDashMPD = dashManifestPattern.MatchString(f.URL)
	return f
}
