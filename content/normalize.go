// Package content normalizes heterogeneous stored article content. Upstream
// generation sometimes wraps the markdown body in JSON, or in a fenced
// ```json block, and published round-trips can leave HTML behind. Everything
// in this package is a pure function of its input.
package content

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSONRegexp = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

type wrappedContent struct {
	Content string `json:"content"`
}

// ExtractContentText extracts the raw text from a loosely-typed content
// value: a plain string is returned as is, an object carrying a string
// "content" field yields that field, nil yields "". Anything else falls back
// to its JSON representation. Never panics.
func ExtractContentText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case map[string]interface{}:
		if inner, ok := c["content"].(string); ok {
			return inner
		}
	}
	serialized, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(serialized)
}

// ExtractContent unwraps content that arrives as a fenced ```json block
// holding a {"content": "..."} payload, an artifact of the generation
// pipeline. The raw string is returned unchanged when no such wrapping is
// detected or the payload does not parse.
func ExtractContent(raw string) string {
	match := fencedJSONRegexp.FindStringSubmatch(raw)
	if match == nil {
		return raw
	}
	var wrapped wrappedContent
	if err := json.Unmarshal([]byte(match[1]), &wrapped); err != nil {
		return raw
	}
	if wrapped.Content == "" {
		return raw
	}
	return wrapped.Content
}

// IsLikelyHTML reports whether the content looks like markup rather than
// markdown, so callers can route it through HTMLToText first.
func IsLikelyHTML(s string) bool {
	trimmed := strings.TrimSpace(s)
	return strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, ">")
}
