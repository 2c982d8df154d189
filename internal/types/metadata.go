package types

import (
	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/samber/mo"
)

// VideoInfo is the aggregate result of an info resolution. A VideoInfo handed
// out by the client may be shared through the cache and must be treated as
// read-only; use Clone before modifying it.
type VideoInfo struct {
	Details       VideoDetails   `json:"videoDetails"`
	HTML5Player   string         `json:"html5player"`
	RelatedVideos []RelatedVideo `json:"relatedVideos,omitempty"`
	Formats       []Format       `json:"formats"`
	Full          bool           `json:"full"`

	PlayerResponse    *innertube.PlayerResponse `json:"-"`
	RawPlayerResponse map[string]any            `json:"playerResponse,omitempty"`
}

// VideoDetails is the metadata block of a VideoInfo.
type VideoDetails struct {
	VideoID       string            `json:"videoId"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Author        Author            `json:"author"`
	PublishDate   string            `json:"publishDate,omitempty"`
	UploadDate    string            `json:"uploadDate,omitempty"`
	LengthSeconds int64             `json:"lengthSeconds"`
	ViewCount     int64             `json:"viewCount"`
	Keywords      []string          `json:"keywords,omitempty"`
	Category      string            `json:"category,omitempty"`
	VideoURL      string            `json:"videoUrl"`
	AgeRestricted bool              `json:"ageRestricted"`
	IsLive        bool              `json:"isLive"`
	Thumbnails    []Thumbnail       `json:"thumbnails,omitempty"`
	Likes         mo.Option[int64]  `json:"likes"`
	Dislikes      mo.Option[int64]  `json:"dislikes"`
	Media         map[string]string `json:"media,omitempty"`
}

type Author struct {
	ID              string      `json:"id,omitempty"`
	Name            string      `json:"name"`
	User            string      `json:"user,omitempty"`
	ChannelURL      string      `json:"channelUrl,omitempty"`
	UserURL         string      `json:"userUrl,omitempty"`
	Thumbnails      []Thumbnail `json:"thumbnails,omitempty"`
	Verified        bool        `json:"verified"`
	SubscriberCount string      `json:"subscriberCount,omitempty"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type RelatedVideo struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author,omitempty"`
	LengthSeconds int64  `json:"lengthSeconds,omitempty"`
	ViewCount     string `json:"viewCount,omitempty"`
	IsLive        bool   `json:"isLive"`
}

// Clone returns a copy whose slices and maps can be modified without
// affecting the receiver. The decoded player response is shared.
func (v *VideoInfo) Clone() *VideoInfo {
	if v == nil {
		return nil
	}
	clone := *v
	clone.Formats = append(make([]Format, 0, len(v.Formats)), v.Formats...)
	clone.RelatedVideos = append([]RelatedVideo(nil), v.RelatedVideos...)
	clone.Details.Keywords = append([]string(nil), v.Details.Keywords...)
	clone.Details.Thumbnails = append([]Thumbnail(nil), v.Details.Thumbnails...)
	if v.Details.Media != nil {
		clone.Details.Media = make(map[string]string, len(v.Details.Media))
		for k, val := range v.Details.Media {
			clone.Details.Media[k] = val
		}
	}
	return &clone
}
