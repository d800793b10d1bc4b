package emotion

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jackzampolin/echo/internal/prompts"
	"github.com/jackzampolin/echo/internal/providers"
)

//go:embed system.tmpl
var systemPrompt string

//go:embed user.tmpl
var userPromptTmpl string

var userTemplate = template.Must(template.New("user").Parse(userPromptTmpl))

// Prompt keys
const (
	SystemPromptKey = "stages.emotion.system"
	UserPromptKey   = "stages.emotion.user"
)

// SystemPrompt returns the system prompt for emotion/genre extraction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPromptData carries the template variables for the user prompt.
// SettingOutput and AmbienceOutput are the raw outputs of the earlier stages.
type UserPromptData struct {
	PageText       string
	SettingOutput  string
	AmbienceOutput string
}

// UserPrompt builds the user prompt for emotion/genre extraction.
func UserPrompt(data UserPromptData) string {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return userPromptTmpl
	}
	return buf.String()
}

// BuildRequest creates the emotion/genre extraction chat request.
func BuildRequest(pageText, settingOutput, ambienceOutput string) *providers.ChatRequest {
	data := UserPromptData{
		PageText:       pageText,
		SettingOutput:  settingOutput,
		AmbienceOutput: ambienceOutput,
	}
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt()},
			{Role: "user", Content: UserPrompt(data)},
		},
	}
}

// ValidateOutput checks that the stage output has the two required labelled lines.
func ValidateOutput(output string) error {
	if !strings.Contains(output, "emotions:") {
		return fmt.Errorf("missing emotions line")
	}
	if !strings.Contains(output, "genre_candidates:") {
		return fmt.Errorf("missing genre_candidates line")
	}
	return nil
}

// RegisterPrompts registers the emotion prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Emotion/genre extraction system prompt - profiles emotional tone and genre cues",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Emotion/genre extraction user prompt template",
	})
}
