package innertube

import (
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the watch-page host used when Config.BaseURL is empty.
	DefaultBaseURL = "https://www.youtube.com"
	// DefaultLang is the interface language requested when none is configured.
	DefaultLang = "en"

	WebClientName    = "1"
	WebClientVersion = "2.20240726.00.00"
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config holds configuration shared by the orchestrator and player JS resolver.
type Config struct {
	HTTPClient              *http.Client
	BaseURL                 string
	UserAgent               string
	RequestHeaders          http.Header
	PlayerJSPreferredLocale string
	RequestTimeout          time.Duration
}

// ResolvedBaseURL returns BaseURL or DefaultBaseURL, without a trailing slash.
func (c Config) ResolvedBaseURL() string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

// ResolvedUserAgent returns UserAgent or the desktop default.
func (c Config) ResolvedUserAgent() string {
	if c.UserAgent == "" {
		return DesktopUserAgent
	}
	return c.UserAgent
}
