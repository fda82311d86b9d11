package optimizations

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes markdown code fence markers wherever they appear.
// Providers wrap output in fences despite instructions not to.
func StripFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// ExtractArray pulls the outermost JSON array out of provider output and
// parses it. Text before the first '[' and after the last ']' is discarded.
func ExtractArray(text string) ([]any, error) {
	cleaned := StripFences(text)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONArray
	}

	var parsed any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	items, ok := parsed.([]any)
	if !ok {
		return nil, ErrUnexpectedShape
	}
	return items, nil
}
