package format

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
	SystemPromptKey = "stages.format.system"
	UserPromptKey   = "stages.format.user"
)

// SystemPrompt returns the system prompt for JSON formatting.
func SystemPrompt() string {
	return systemPrompt
}

// UserPromptData carries the raw outputs of the three extraction stages.
type UserPromptData struct {
	SettingOutput  string
	AmbienceOutput string
	EmotionOutput  string
}

// UserPrompt builds the user prompt for JSON formatting.
func UserPrompt(data UserPromptData) string {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return userPromptTmpl
	}
	return buf.String()
}

// BuildRequest creates the JSON formatting chat request.
func BuildRequest(settingOutput, ambienceOutput, emotionOutput string) *providers.ChatRequest {
	data := UserPromptData{
		SettingOutput:  settingOutput,
		AmbienceOutput: ambienceOutput,
		EmotionOutput:  emotionOutput,
	}
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt()},
			{Role: "user", Content: UserPrompt(data)},
		},
	}
}

// ValidateOutput checks that the stage output is a bare JSON object.
func ValidateOutput(output string) error {
	trimmed := strings.TrimSpace(output)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return fmt.Errorf("output is not a bare JSON object")
	}
	return nil
}

// RegisterPrompts registers the format prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "JSON formatting system prompt - converts labelled stage outputs to the soundscape object",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "JSON formatting user prompt template",
	})
}
