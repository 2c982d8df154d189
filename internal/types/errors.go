package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrVideoUnavailable indicates that the video exposes neither a playable
	// format nor a manifest to derive one from.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrPlayerResponseMissing indicates the watch payload carried no player response.
	ErrPlayerResponseMissing = errors.New("player response not found")
)

// ParseError reports a malformed upstream payload. Stage names the payload
// that failed: "config", "player_response", "dash" or "hls".
type ParseError struct {
	Stage string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PlayabilityError indicates the platform marked the video unplayable. Its
// message is the platform's reason with markup removed.
type PlayabilityError struct {
	Status string
	Reason string
}

func (e *PlayabilityError) Error() string {
	if e.Reason == "" {
		return "video unplayable: " + e.Status
	}
	return e.Reason
}

func (e *PlayabilityError) RequiresLogin() bool {
	s := strings.ToUpper(e.Status + " " + e.Reason)
	return strings.Contains(s, "LOGIN") || strings.Contains(s, "SIGN IN")
}

func (e *PlayabilityError) IsPrivate() bool {
	return strings.Contains(strings.ToUpper(e.Reason), "PRIVATE")
}

func (e *PlayabilityError) IsGeoRestricted() bool {
	s := strings.ToUpper(e.Reason)
	return strings.Contains(s, "COUNTRY") ||
		strings.Contains(s, "REGION") ||
		strings.Contains(s, "LOCATION")
}

// HTTPStatusError indicates a non-2xx response from an upstream endpoint.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Snippet    string
}

func (e *HTTPStatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("http status=%d url=%s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("http status=%d url=%s: %s", e.StatusCode, e.URL, e.Snippet)
}
