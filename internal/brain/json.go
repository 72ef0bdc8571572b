package brain

import "strings"

// ExtractJSON pulls the single JSON object out of a model response. Models
// routinely wrap the object in markdown fences or surrounding prose; both are
// stripped. If no object can be located the trimmed input is returned and the
// caller's unmarshal decides.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
