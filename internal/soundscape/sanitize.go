package soundscape

import "strings"

// Sanitize reduces best-effort model output to a bare JSON object using a
// fixed grammar: trim surrounding whitespace, strip markdown code fences,
// then take the outermost '{' ... '}' span. Returns "" when no top-level
// object is present. It never calls the model; structure correction is a
// pure text-processing concern.
func Sanitize(raw string) string {
	content := strings.TrimSpace(raw)
	if content == "" {
		return ""
	}

	if stripped := stripCodeFences(content); stripped != "" {
		content = stripped
	}

	return extractObjectCandidate(content)
}

// stripCodeFences removes a surrounding markdown fence (```json ... ```).
// Returns "" when the content is not fenced.
func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// extractObjectCandidate returns the outermost top-level object span,
// or "" when the content contains no object.
func extractObjectCandidate(content string) string {
	start := strings.Index(content, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(content, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
