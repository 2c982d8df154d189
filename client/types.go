package client

import (
	"time"

	"github.com/famomatic/ytinfo/internal/cache"
	"github.com/famomatic/ytinfo/internal/types"
)

// VideoInfo is the result of GetBasicInfo and GetFullInfo. Records may be
// shared through the cache and must be treated as read-only; call Clone
// before modifying one.
type VideoInfo = types.VideoInfo

type (
	VideoDetails = types.VideoDetails
	Author       = types.Author
	Thumbnail    = types.Thumbnail
	RelatedVideo = types.RelatedVideo
	Format       = types.Format
)

// Cache memoizes info results keyed by operation, video id and language.
type Cache = cache.Store[*VideoInfo]

// NewMemoryCache returns an in-memory Cache. A zero ttl keeps entries until
// evicted; a zero maxEntries leaves the size unbounded.
func NewMemoryCache(ttl time.Duration, maxEntries int) Cache {
	return cache.NewMemory[*VideoInfo](cache.Options{TTL: ttl, MaxEntries: maxEntries})
}
