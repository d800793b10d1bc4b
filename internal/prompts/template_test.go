package prompts

import "testing"

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "single variable",
			text:     "Analyze {{.PageText}} carefully",
			expected: []string{"PageText"},
		},
		{
			name:     "multiple sorted deduped",
			text:     "{{.SettingOutput}} then {{.AmbienceOutput}} then {{.SettingOutput}}",
			expected: []string{"AmbienceOutput", "SettingOutput"},
		},
		{
			name:     "spaced braces",
			text:     "{{ .PageText }}",
			expected: []string{"PageText"},
		},
		{
			name:     "no variables",
			text:     "plain prompt text",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVariables(tt.text)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("variable %d: expected %s, got %s", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestHashText(t *testing.T) {
	h1 := HashText("prompt text")
	h2 := HashText("prompt text")
	h3 := HashText("different text")

	if h1 != h2 {
		t.Error("same text must hash identically")
	}
	if h1 == h3 {
		t.Error("different text must hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver(nil)
	r.Register(EmbeddedPrompt{
		Key:         "stages.test.user",
		Text:        "Analyze {{.PageText}}",
		Description: "test prompt",
	})

	t.Run("resolve fills derived fields", func(t *testing.T) {
		p, err := r.Resolve("stages.test.user")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if p.Hash == "" {
			t.Error("expected hash to be derived on register")
		}
		if len(p.Variables) != 1 || p.Variables[0] != "PageText" {
			t.Errorf("expected derived variables, got %v", p.Variables)
		}
	})

	t.Run("unknown key errors", func(t *testing.T) {
		if _, err := r.Resolve("stages.missing.user"); err == nil {
			t.Error("expected error for unknown key")
		}
	})

	t.Run("all embedded sorted", func(t *testing.T) {
		r.Register(EmbeddedPrompt{Key: "stages.aaa.system", Text: "x"})
		all := r.AllEmbedded()
		if len(all) != 2 {
			t.Fatalf("expected 2 prompts, got %d", len(all))
		}
		if all[0].Key != "stages.aaa.system" {
			t.Errorf("expected sorted order, got %s first", all[0].Key)
		}
	})
}
