package soundscape

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object unchanged",
			input:    `{"setting": {}}`,
			expected: `{"setting": {}}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n  {\"a\": 1}  \n",
			expected: `{"a": 1}`,
		},
		{
			name:     "json code fence stripped",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "plain code fence stripped",
			input:    "```\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "fence without trailing marker",
			input:    "```json\n{\"a\": 1}",
			expected: `{"a": 1}`,
		},
		{
			name:     "prose before and after object",
			input:    "Here is the JSON you asked for:\n{\"a\": 1}\nHope that helps!",
			expected: `{"a": 1}`,
		},
		{
			name:     "outermost braces win",
			input:    `prefix {"outer": {"inner": 1}} suffix`,
			expected: `{"outer": {"inner": 1}}`,
		},
		{
			name:     "no object present",
			input:    "I could not produce JSON for this page.",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \n\t  ",
			expected: "",
		},
		{
			name:     "close brace before open brace",
			input:    "} nothing {",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	input := "```json\nSure! {\"setting\": {\"location\": \"forest\"}}\n```"
	once := Sanitize(input)
	twice := Sanitize(once)
	if once != twice {
		t.Errorf("second pass changed output: %q vs %q", once, twice)
	}
}
