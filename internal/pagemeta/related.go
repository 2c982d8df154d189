package pagemeta

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/famomatic/ytinfo/internal/types"
)

// GetRelatedVideos lists the compact video entries of the secondary column.
func GetRelatedVideos(body map[string]any) []types.RelatedVideo {
	results := list(body, "response", "contents", "twoColumnWatchNextResults",
		"secondaryResults", "secondaryResults", "results")

	related := lo.FilterMap(results, func(item any, _ int) (types.RelatedVideo, bool) {
		r := object(item, "compactVideoRenderer")
		id := str(r, "videoId")
		if id == "" {
			return types.RelatedVideo{}, false
		}
		v := types.RelatedVideo{
			ID:        id,
			Title:     text(r["title"]),
			Author:    text(r["shortBylineText"]),
			ViewCount: text(r["viewCountText"]),
		}
		v.LengthSeconds = parseClock(text(r["lengthText"]))
		for _, badge := range list(r, "badges") {
			if str(badge, "metadataBadgeRenderer", "style") == "BADGE_STYLE_TYPE_LIVE_NOW" {
				v.IsLive = true
			}
		}
		return v, true
	})
	return lo.UniqBy(related, func(v types.RelatedVideo) string { return v.ID })
}

// GetMedia returns the label/value rows of the metadata row container, such
// as the song or game shown beneath the description.
func GetMedia(body map[string]any) map[string]string {
	secondary := findRenderer(watchResults(body), "videoSecondaryInfoRenderer")
	rows := list(secondary, "metadataRowContainer", "metadataRowContainerRenderer", "rows")
	media := make(map[string]string)
	for _, row := range rows {
		r := object(row, "metadataRowRenderer")
		if r == nil {
			continue
		}
		title := strings.ToLower(strings.TrimSpace(text(r["title"])))
		contents := list(r, "contents")
		if title == "" || len(contents) == 0 {
			continue
		}
		media[title] = text(contents[0])
	}
	if len(media) == 0 {
		return nil
	}
	return media
}

// parseClock converts "h:mm:ss" or "m:ss" to seconds.
func parseClock(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	var total int64
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}
