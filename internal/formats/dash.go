package formats

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/famomatic/ytinfo/internal/types"
)

// FetchDASH downloads a DASH manifest and streams it into ParseDASH.
func FetchDASH(ctx context.Context, client *http.Client, manifestURL string, headers http.Header) (*StubSet, error) {
	body, err := openManifest(ctx, client, manifestURL, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return ParseDASH(body, manifestURL)
}

// ParseDASH reads a DASH manifest token by token and records one stub per
// Representation element, keyed by its id attribute. Every stub carries the
// manifest URL itself; per-representation segment URLs are not extracted.
// Any XML error discards the partial result.
func ParseDASH(r io.Reader, manifestURL string) (*StubSet, error) {
	dec := xml.NewDecoder(r)
	set := NewStubSet()
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return set, nil
		}
		if err != nil {
			return nil, &types.ParseError{Stage: "dash", Err: err}
		}
		start, ok := tok.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "Representation") {
			continue
		}
		id := strings.TrimSpace(attrValue(start, "id"))
		if id == "" {
			continue
		}
		set.Set(Stub{ID: id, URL: manifestURL})
	}
}

func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value
		}
	}
	return ""
}
