package llm

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// DecodeStrict parses a model reply into out. Models frequently wrap JSON in
// markdown fences or prepend prose, so the text is narrowed to the outermost
// JSON object or array before unmarshaling. Any remaining syntax error is
// returned as-is; there is no repair.
func DecodeStrict(text string, out any) error {
	narrowed, err := extractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(narrowed), out); err != nil {
		return fmt.Errorf("decoding structured response: %w", err)
	}
	return nil
}

// extractJSON strips markdown code fences and trims to the outermost
// {...} or [...] span.
func extractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start := objStart
	end := strings.LastIndexByte(s, '}')
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start = arrStart
		end = strings.LastIndexByte(s, ']')
	}
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON payload in response of %d bytes", len(text))
	}
	return s[start : end+1], nil
}
