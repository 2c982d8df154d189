package pagemeta

import (
	"github.com/samber/mo"
)

// GetLikes reads the like count from the primary info renderer's like button.
func GetLikes(body map[string]any) mo.Option[int64] {
	return ratingCount(body, "LIKE")
}

// GetDislikes reads the dislike count. The platform hides it for most
// videos, in which case the result is absent.
func GetDislikes(body map[string]any) mo.Option[int64] {
	return ratingCount(body, "DISLIKE")
}

func ratingCount(body map[string]any, icon string) mo.Option[int64] {
	primary := findRenderer(watchResults(body), "videoPrimaryInfoRenderer")
	for _, button := range list(primary, "videoActions", "menuRenderer", "topLevelButtons") {
		toggle := object(button, "toggleButtonRenderer")
		if toggle == nil {
			toggle = object(button, "segmentedLikeDislikeButtonRenderer", iconButtonKey(icon), "toggleButtonRenderer")
		}
		if str(toggle, "defaultIcon", "iconType") != icon {
			continue
		}
		label := str(toggle, "defaultText", "accessibility", "accessibilityData", "label")
		if label == "" {
			label = str(toggle, "accessibilityData", "accessibilityData", "label")
		}
		if n, ok := parseDigits(label); ok {
			return mo.Some(n)
		}
	}
	return mo.None[int64]()
}

func iconButtonKey(icon string) string {
	if icon == "DISLIKE" {
		return "dislikeButton"
	}
	return "likeButton"
}
