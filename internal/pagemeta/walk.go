// Package pagemeta extracts secondary, best-effort metadata from the watch
// page payload. Every function tolerates missing or reshaped data and returns
// a zero value instead of failing.
package pagemeta

import (
	"strconv"
	"strings"
)

// path walks nested maps and slices. String elements index maps, int
// elements index slices.
func path(v any, keys ...any) any {
	for _, k := range keys {
		switch key := k.(type) {
		case string:
			m, ok := v.(map[string]any)
			if !ok {
				return nil
			}
			v = m[key]
		case int:
			s, ok := v.([]any)
			if !ok || key < 0 || key >= len(s) {
				return nil
			}
			v = s[key]
		default:
			return nil
		}
	}
	return v
}

func list(v any, keys ...any) []any {
	s, _ := path(v, keys...).([]any)
	return s
}

func object(v any, keys ...any) map[string]any {
	m, _ := path(v, keys...).(map[string]any)
	return m
}

func str(v any, keys ...any) string {
	s, _ := path(v, keys...).(string)
	return s
}

// text renders the platform's localized text shape: a plain string, a
// {simpleText} object or a {runs:[{text}]} object.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if s, ok := t["simpleText"].(string); ok {
			return s
		}
		var b strings.Builder
		for _, run := range list(t, "runs") {
			b.WriteString(str(run, "text"))
		}
		return b.String()
	}
	return ""
}

// watchResults returns the primary column contents of the watch-next payload.
func watchResults(body map[string]any) []any {
	return list(body, "response", "contents", "twoColumnWatchNextResults", "results", "results", "contents")
}

// findRenderer returns the first element of items holding the named renderer.
func findRenderer(items []any, name string) map[string]any {
	for _, item := range items {
		if r := object(item, name); r != nil {
			return r
		}
	}
	return nil
}

func parseDigits(s string) (int64, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	return n, err == nil
}
