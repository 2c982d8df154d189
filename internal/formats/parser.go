package formats

import (
	"strconv"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/types"
)

// Parse extracts the primary format list from a player response: the
// progressive "formats" followed by the "adaptiveFormats", in encounter
// order. A response without streaming data yields an empty list.
func Parse(resp *innertube.PlayerResponse) []types.Format {
	formats := make([]types.Format, 0)
	if resp == nil || resp.StreamingData == nil {
		return formats
	}

	extract := func(raw []innertube.Format) {
		for _, f := range raw {
			parsed := types.Format{
				ID:              strconv.Itoa(int(f.Itag)),
				Itag:            int(f.Itag),
				URL:             f.URL,
				MimeType:        f.MimeType,
				Bitrate:         int(f.Bitrate),
				AverageBitrate:  int(f.AverageBitrate),
				Width:           int(f.Width),
				Height:          int(f.Height),
				FPS:             int(f.FPS),
				Quality:         f.Quality,
				QualityLabel:    f.QualityLabel,
				AudioQuality:    f.AudioQuality,
				AudioChannels:   int(f.AudioChannels),
				LastModified:    f.LastModified,
				ProjectionType:  f.ProjectionType,
				SignatureCipher: f.SignatureCipher,
				Cipher:          f.Cipher,
			}
			parsed.AudioSampleRate = int(parseInt64(f.AudioSampleRate))
			parsed.ApproxDurationMs = parseInt64(f.ApproxDurationMs)
			parsed.ContentLength = parseInt64(f.ContentLength)
			parsed.InitRange = parseRange(f.InitRange)
			parsed.IndexRange = parseRange(f.IndexRange)
			parsed.Ciphered = f.URL == "" && (f.SignatureCipher != "" || f.Cipher != "")
			formats = append(formats, parsed)
		}
	}

	extract(resp.StreamingData.Formats)
	extract(resp.StreamingData.AdaptiveFormats)

	return formats
}

func parseRange(r *innertube.Range) *types.Range {
	if r == nil {
		return nil
	}
	return &types.Range{Start: parseInt64(r.Start), End: parseInt64(r.End)}
}

func parseInt64(raw innertube.Number) int64 {
	v, err := strconv.ParseInt(raw.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
