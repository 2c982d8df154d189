package client

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	youtubeIDPattern  = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	pathDomainPattern = regexp.MustCompile(`^https?://(youtu\.be/|(www\.)?youtube\.com/(embed|v|shorts|live)/)`)
	schemePattern     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
)

var queryDomains = map[string]bool{
	"youtube.com":        true,
	"www.youtube.com":    true,
	"m.youtube.com":      true,
	"music.youtube.com":  true,
	"gaming.youtube.com": true,
}

// ValidateID reports whether id has the shape of a video id.
func ValidateID(id string) bool {
	return youtubeIDPattern.MatchString(strings.TrimSpace(id))
}

// ValidateURL reports whether rawURL is a video URL a video id can be
// extracted from.
func ValidateURL(rawURL string) bool {
	_, err := GetURLVideoID(rawURL)
	return err == nil
}

// GetURLVideoID extracts the video id from watch, short, embed, live and
// youtu.be URLs. A URL without a scheme is read as https.
func GetURLVideoID(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", &ValidationError{Input: rawURL, Reason: "empty_input"}
	}
	if !schemePattern.MatchString(s) {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", &ValidationError{Input: rawURL, Reason: "malformed_url", Err: err}
	}

	host := strings.ToLower(u.Hostname())
	id := u.Query().Get("v")
	if pathDomainPattern.MatchString(strings.ToLower(u.Scheme+"://"+u.Host+u.Path)) && id == "" {
		segments := strings.Split(u.Path, "/")
		if host == "youtu.be" {
			id = segmentAt(segments, 1)
		} else {
			id = segmentAt(segments, 2)
		}
	} else if !queryDomains[host] {
		return "", &ValidationError{Input: rawURL, Reason: "unsupported_host"}
	}

	if id == "" {
		return "", &ValidationError{Input: rawURL, Reason: "missing_video_id"}
	}
	if len(id) > 11 {
		id = id[:11]
	}
	if !ValidateID(id) {
		return "", &ValidationError{Input: rawURL, Reason: "malformed_video_id"}
	}
	return id, nil
}

// GetVideoID accepts either a raw id or a video URL.
func GetVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if ValidateID(s) {
		return s, nil
	}
	return GetURLVideoID(s)
}

func segmentAt(segments []string, i int) string {
	if i < len(segments) {
		return segments[i]
	}
	return ""
}
