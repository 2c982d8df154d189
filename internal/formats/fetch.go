package formats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/famomatic/ytinfo/internal/types"
)

// openManifest issues a GET for a manifest and returns the open body for
// streaming consumption. The caller must close it.
func openManifest(ctx context.Context, client *http.Client, manifestURL string, headers http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, values := range headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &types.HTTPStatusError{
			URL:        manifestURL,
			StatusCode: resp.StatusCode,
			Snippet:    strings.TrimSpace(string(snippet)),
		}
	}
	return resp.Body, nil
}
