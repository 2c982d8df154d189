package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"

	"github.com/samber/lo"

	"github.com/famomatic/ytinfo/internal/innertube"
	"github.com/famomatic/ytinfo/internal/types"
)

var (
	antiXSSIPrefix    = []byte(")]}'")
	playerPathPattern = regexp.MustCompile(`/s/player/[A-Za-z0-9_-]+/[A-Za-z0-9._/-]*/base\.js`)
)

// decodeWatchPayload parses the watch response body: an optional anti-XSSI
// prefix followed by a sequence of JSON values. Top-level arrays contribute
// their elements. All objects are deep-merged left to right.
func decodeWatchPayload(raw []byte) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	raw = bytes.TrimPrefix(raw, antiXSSIPrefix)

	merged := make(map[string]any)
	dec := json.NewDecoder(bytes.NewReader(raw))
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &types.ParseError{Stage: "config", Err: err}
		}

		parts := []any{v}
		if arr, ok := v.([]any); ok {
			parts = arr
		}
		for _, part := range parts {
			obj, ok := part.(map[string]any)
			if !ok {
				return nil, &types.ParseError{Stage: "config", Err: fmt.Errorf("unexpected %T in watch payload", part)}
			}
			deepMerge(merged, obj)
		}
	}
	return merged, nil
}

// deepMerge copies src into dst. Nested objects present on both sides are
// merged recursively; any other value in src replaces the one in dst.
func deepMerge(dst, src map[string]any) {
	for k, v := range src {
		if srcObj, ok := v.(map[string]any); ok {
			if dstObj, ok := dst[k].(map[string]any); ok {
				deepMerge(dstObj, srcObj)
				continue
			}
		}
		dst[k] = v
	}
}

// playerResponseValue locates the player response in the merged payload. It
// is either an embedded JSON string or an already decoded object.
func playerResponseValue(body map[string]any) (any, bool) {
	if v, ok := body["playerResponse"]; ok && v != nil {
		return v, true
	}
	if v, ok := body["player_response"]; ok && v != nil {
		return v, true
	}
	if player, ok := body["player"].(map[string]any); ok {
		if args, ok := player["args"].(map[string]any); ok {
			if v, ok := args["player_response"]; ok && v != nil {
				return v, true
			}
		}
	}
	return nil, false
}

// decodePlayerResponse normalizes the player response into both its raw map
// form and the typed model.
func decodePlayerResponse(body map[string]any) (map[string]any, *innertube.PlayerResponse, error) {
	v, ok := playerResponseValue(body)
	if !ok {
		return nil, nil, &types.ParseError{Stage: "player_response", Err: types.ErrPlayerResponseMissing}
	}

	var raw map[string]any
	switch pr := v.(type) {
	case string:
		if err := json.Unmarshal([]byte(pr), &raw); err != nil {
			return nil, nil, &types.ParseError{Stage: "player_response", Err: err}
		}
	case map[string]any:
		raw = pr
	default:
		return nil, nil, &types.ParseError{Stage: "player_response", Err: fmt.Errorf("unexpected %T", v)}
	}
	if raw == nil {
		return nil, nil, &types.ParseError{Stage: "player_response", Err: types.ErrPlayerResponseMissing}
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, &types.ParseError{Stage: "player_response", Err: err}
	}
	// A field of an unexpected type is left zero; the rest still decodes.
	var (
		resp     innertube.PlayerResponse
		mismatch *json.UnmarshalTypeError
	)
	if err := json.Unmarshal(encoded, &resp); err != nil && !errors.As(err, &mismatch) {
		return nil, nil, &types.ParseError{Stage: "player_response", Err: err}
	}
	return raw, &resp, nil
}

// html5Player finds the player script reference: the player assets entry,
// the web player context config, or the first player path in the raw body.
func html5Player(body map[string]any, raw []byte) string {
	if player, ok := body["player"].(map[string]any); ok {
		if assets, ok := player["assets"].(map[string]any); ok {
			if js, ok := assets["js"].(string); ok && js != "" {
				return js
			}
		}
	}
	if contexts, ok := body["webPlayerContextConfig"].(map[string]any); ok {
		keys := lo.Keys(contexts)
		slices.Sort(keys)
		for _, key := range keys {
			if cfg, ok := contexts[key].(map[string]any); ok {
				if js, ok := cfg["jsUrl"].(string); ok && js != "" {
					return js
				}
			}
		}
	}
	return string(playerPathPattern.Find(raw))
}

// ageRestricted reports the embed-only flag of the legacy player args or a
// microformat that is not family safe.
func ageRestricted(body map[string]any, resp *innertube.PlayerResponse) bool {
	if player, ok := body["player"].(map[string]any); ok {
		if args, ok := player["args"].(map[string]any); ok && truthy(args["is_embed"]) {
			return true
		}
	}
	safe := resp.Microformat.PlayerMicroformatRenderer.IsFamilySafe
	return safe != nil && !*safe
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != "" && t != "0" && t != "false"
	case float64:
		return t != 0
	}
	return false
}
