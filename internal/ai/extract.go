// README: JSON payload isolation for noisy model replies.
package ai

import "strings"

// ExtractJSONBlock isolates the JSON span inside a model reply. Models wrap
// JSON in explanatory prose and markdown fences even when asked not to, so the
// payload is narrowed to the outermost brace/bracket span on a best-effort
// basis. No semantic validation happens here; callers still have to parse.
func ExtractJSONBlock(raw string) string {
	s := strings.TrimSpace(raw)

	// Leading fence, optionally tagged "json".
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimLeft(s, " \t\r\n")
	}
	// Trailing fence.
	if strings.HasSuffix(strings.TrimRight(s, " \t\r\n"), "```") {
		s = strings.TrimRight(s, " \t\r\n")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimRight(s, " \t\r\n")
	}
	// Stray backticks on either end.
	s = strings.TrimLeft(s, "`")
	s = strings.TrimRight(s, "`")

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start := -1
	switch {
	case objStart >= 0 && arrStart >= 0:
		start = min(objStart, arrStart)
	case objStart >= 0:
		start = objStart
	case arrStart >= 0:
		start = arrStart
	}
	if start < 0 {
		return s
	}

	end := max(strings.LastIndex(s, "}"), strings.LastIndex(s, "]"))
	if end >= start {
		return strings.TrimSpace(s[start : end+1])
	}
	return s
}
