package orchestrator

import (
	"context"
	"strconv"

	"github.com/samber/lo"

	"github.com/famomatic/ytinfo/internal/formats"
	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/pagemeta"
	"github.com/famomatic/ytinfo/internal/types"
)

// GetBasicInfo fetches and validates the watch payload of a video and
// assembles its metadata and primary format list. Formats are returned as
// the platform lists them, without decipherment.
func (e *Engine) GetBasicInfo(ctx context.Context, videoID string, opts Options) (*types.VideoInfo, error) {
	raw, err := e.fetchWatchPayload(ctx, videoID, opts)
	if err != nil {
		return nil, err
	}
	body, err := decodeWatchPayload(raw)
	if err != nil {
		return nil, err
	}
	rawResp, resp, err := decodePlayerResponse(body)
	if err != nil {
		return nil, err
	}

	status := resp.PlayabilityStatus
	if status.IsUnplayable() {
		return nil, &types.PlayabilityError{
			Status: status.Status,
			Reason: pagemeta.StripHTML(status.DisplayReason()),
		}
	}
	if !status.IsOK() {
		e.logger.Debug().
			Str("video_id", videoID).
			Str("status", status.Status).
			Str("reason", status.DisplayReason()).
			Msg("non-fatal playability status")
	}

	info := &types.VideoInfo{
		Details:           e.details(videoID, body, resp),
		HTML5Player:       html5Player(body, raw),
		RelatedVideos:     pagemeta.GetRelatedVideos(body),
		Formats:           formats.Parse(resp),
		PlayerResponse:    resp,
		RawPlayerResponse: rawResp,
	}
	info.Details.AgeRestricted = ageRestricted(body, resp)
	return info, nil
}

func (e *Engine) details(videoID string, body map[string]any, resp *innertube.PlayerResponse) types.VideoDetails {
	vd := resp.VideoDetails
	mf := resp.Microformat.PlayerMicroformatRenderer
	base := e.config.ResolvedBaseURL()

	id := lo.CoalesceOrEmpty(vd.VideoID, videoID)
	thumbs := vd.Thumbnail.Thumbnails
	if len(thumbs) == 0 {
		thumbs = mf.Thumbnail.Thumbnails
	}

	return types.VideoDetails{
		VideoID:       id,
		Title:         lo.CoalesceOrEmpty(vd.Title, mf.Title.String()),
		Description:   lo.CoalesceOrEmpty(vd.ShortDescription, mf.Description.String()),
		Author:        pagemeta.GetAuthor(body, resp, base),
		PublishDate:   mf.PublishDate,
		UploadDate:    mf.UploadDate,
		LengthSeconds: parseCount(lo.CoalesceOrEmpty(vd.LengthSeconds, mf.LengthSeconds)),
		ViewCount:     parseCount(lo.CoalesceOrEmpty(vd.ViewCount, mf.ViewCount)),
		Keywords:      vd.Keywords,
		Category:      mf.Category,
		VideoURL:      base + "/watch?v=" + id,
		IsLive:        vd.IsLiveContent && resp.PlayabilityStatus.IsLive(),
		Thumbnails: lo.Map(thumbs, func(t innertube.Thumbnail, _ int) types.Thumbnail {
			return types.Thumbnail{URL: t.URL, Width: int(t.Width), Height: int(t.Height)}
		}),
		Likes:    pagemeta.GetLikes(body),
		Dislikes: pagemeta.GetDislikes(body),
		Media:    pagemeta.GetMedia(body),
	}
}

func parseCount(s innertube.Number) int64 {
	n, err := strconv.ParseInt(s.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
