// README: JSON-span extraction tests for noisy model replies.
package ai

import "testing"

func TestExtractJSONBlock(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "bare array",
			in:   `[1,2,3]`,
			want: `[1,2,3]`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "untagged fence",
			in:   "```\n[1,2]\n```",
			want: `[1,2]`,
		},
		{
			name: "stray backticks",
			in:   "``{\"a\":1}``",
			want: `{"a":1}`,
		},
		{
			name: "leading prose",
			in:   "Here is the itinerary you asked for:\n{\"itinerary\":[]}",
			want: `{"itinerary":[]}`,
		},
		{
			name: "trailing prose",
			in:   "{\"a\":1}\nLet me know if you need changes.",
			want: `{"a":1}`,
		},
		{
			name: "array before object start",
			in:   "noise [ {\"a\":1} ] noise",
			want: `[ {"a":1} ]`,
		},
		{
			name: "no json at all",
			in:   "   plain text reply   ",
			want: "plain text reply",
		},
		{
			name: "unbalanced braces returned as-is",
			in:   "} oops {",
			want: "} oops {",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractJSONBlock(tc.in)
			if got != tc.want {
				t.Errorf("ExtractJSONBlock(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// Extraction must be idempotent: a second pass over an already-extracted
// payload yields the same payload.
func TestExtractJSONBlockIdempotent(t *testing.T) {
	inputs := []string{
		`{"a":1}`,
		"```json\n{\"a\": {\"b\": [1,2]}}\n```",
		"prose before [\"x\",\"y\"] prose after",
		"no json here",
		"`{\"k\":\"v\"}`",
		"",
	}
	for _, in := range inputs {
		once := ExtractJSONBlock(in)
		twice := ExtractJSONBlock(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestExtractJSONBlockKeepsFencedContent(t *testing.T) {
	inner := `{"days":[{"date":"2026-06-01"}]}`
	got := ExtractJSONBlock("```json\n" + inner + "\n```")
	if got != inner {
		t.Errorf("fenced content changed: got %q, want %q", got, inner)
	}
}
