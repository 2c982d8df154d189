package formats

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/famomatic/ytinfo/internal/types"
)

var (
	absoluteURLPattern = regexp.MustCompile(`^https?://`)
	itagSegmentPattern = regexp.MustCompile(`/itag/(\d+)/`)
)

const maxPlaylistLine = 1 << 20

// FetchHLS downloads an HLS master playlist and streams it into ParseHLS.
func FetchHLS(ctx context.Context, client *http.Client, manifestURL string, headers http.Header) (*StubSet, error) {
	body, err := openManifest(ctx, client, manifestURL, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseHLS(body, manifestURL)
}

// ParseHLS keeps only absolute http(s) lines of a playlist and keys each by
// the /itag/<n>/ segment it contains. Directives and comments are skipped;
// a URL line without an itag segment fails the whole parse.
func ParseHLS(r io.Reader, manifestURL string) (*StubSet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPlaylistLine)

	set := NewStubSet()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !absoluteURLPattern.MatchString(line) {
			continue
		}
		m := itagSegmentPattern.FindStringSubmatch(line)
		if len(m) < 2 {
			return nil, &types.ParseError{
				Stage: "hls",
				Err:   fmt.Errorf("no itag in playlist entry %q of %s", line, manifestURL),
			}
		}
		set.Set(Stub{ID: m[1], URL: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, &types.ParseError{Stage: "hls", Err: err}
	}
	return set, nil
}
