package internal

import (
	"encoding/json"
	"strings"
)

// HealJSON repairs the truncation bWell produces when a session ends
// mid-write: a top-level object whose data array was cut off, possibly
// after a trailing comma.
//
//	{"data": [{"k": 1}, -> {"data": [{"k": 1}]}
//
// Content that is already valid JSON is returned unchanged. The result is
// not guaranteed to parse.
func HealJSON(content string) string {
	if json.Valid([]byte(content)) {
		return content
	}

	healed := strings.TrimSpace(content)
	if healed == "" {
		return healed
	}

	healed = strings.TrimSuffix(healed, ",")

	switch {
	case strings.HasSuffix(healed, "]}"):
	case strings.HasSuffix(healed, "]"):
		healed += "}"
	default:
		healed += "]}"
	}

	return healed
}
