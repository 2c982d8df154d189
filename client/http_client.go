package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

func defaultHTTPClient(proxyURL string) *http.Client {
	client, err := proxiedHTTPClient(proxyURL)
	if err != nil || client == nil {
		return http.DefaultClient
	}
	return client
}

// proxiedHTTPClient returns a client routing through proxyURL, or nil when
// proxyURL is empty.
func proxiedHTTPClient(proxyURL string) (*http.Client, error) {
	if strings.TrimSpace(proxyURL) == "" {
		return nil, nil
	}
	parsed, err := url.Parse(proxyURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("%w: proxy url %q", ErrInvalidInput, proxyURL)
	}
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("default transport is %T", http.DefaultTransport)
	}
	transport := baseTransport.Clone()
	transport.Proxy = http.ProxyURL(parsed)
	return &http.Client{Transport: transport}, nil
}
