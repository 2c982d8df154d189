package pagemeta

import (
	"strings"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/types"
)

// GetAuthor assembles the uploader block from the owner renderer of the
// watch-next payload, falling back to the player response.
func GetAuthor(body map[string]any, pr *innertube.PlayerResponse, baseURL string) types.Author {
	var author types.Author

	secondary := findRenderer(watchResults(body), "videoSecondaryInfoRenderer")
	if owner := object(secondary, "owner", "videoOwnerRenderer"); owner != nil {
		author.Name = text(owner["title"])
		author.ID = str(owner, "navigationEndpoint", "browseEndpoint", "browseId")
		if canonical := str(owner, "navigationEndpoint", "browseEndpoint", "canonicalBaseUrl"); canonical != "" {
			author.UserURL = baseURL + canonical
			author.User = strings.TrimPrefix(strings.TrimPrefix(canonical, "/user/"), "/")
		}
		author.SubscriberCount = text(owner["subscriberCountText"])
		for _, t := range list(owner, "thumbnail", "thumbnails") {
			author.Thumbnails = append(author.Thumbnails, thumbnail(t, baseURL))
		}
		for _, badge := range list(owner, "badges") {
			style := str(badge, "metadataBadgeRenderer", "style")
			if strings.Contains(style, "VERIFIED") {
				author.Verified = true
			}
		}
	}

	if pr != nil {
		mf := pr.Microformat.PlayerMicroformatRenderer
		if author.ID == "" {
			author.ID = firstNonEmpty(pr.VideoDetails.ChannelID, mf.ExternalChannelID)
		}
		if author.Name == "" {
			author.Name = firstNonEmpty(pr.VideoDetails.Author, mf.OwnerChannelName)
		}
		if author.UserURL == "" && mf.OwnerProfileURL != "" {
			author.UserURL = mf.OwnerProfileURL
		}
	}
	if author.ID != "" {
		author.ChannelURL = baseURL + "/channel/" + author.ID
	}
	return author
}

func thumbnail(v any, baseURL string) types.Thumbnail {
	u := str(v, "url")
	if strings.HasPrefix(u, "//") {
		u = "https:" + u
	} else if strings.HasPrefix(u, "/") {
		u = baseURL + u
	}
	w, _ := path(v, "width").(float64)
	h, _ := path(v, "height").(float64)
	return types.Thumbnail{URL: u, Width: int(w), Height: int(h)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
