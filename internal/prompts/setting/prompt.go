package setting

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
	SystemPromptKey = "stages.setting.system"
	UserPromptKey   = "stages.setting.user"
)

// SystemPrompt returns the system prompt for setting extraction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPromptData carries the template variables for the user prompt.
type UserPromptData struct {
	PageText string
}

// UserPrompt builds the user prompt for setting extraction.
func UserPrompt(data UserPromptData) string {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		// Fallback to raw template on error
		return userPromptTmpl
	}
	return buf.String()
}

// BuildRequest creates the setting extraction chat request.
func BuildRequest(pageText string) *providers.ChatRequest {
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt()},
			{Role: "user", Content: UserPrompt(UserPromptData{PageText: pageText})},
		},
	}
}

// ValidateOutput checks that the stage output has the two required labelled lines.
func ValidateOutput(output string) error {
	if !strings.Contains(output, "setting_location:") {
		return fmt.Errorf("missing setting_location line")
	}
	if !strings.Contains(output, "setting_environment:") {
		return fmt.Errorf("missing setting_environment line")
	}
	return nil
}

// RegisterPrompts registers the setting prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Setting extraction system prompt - identifies scene location and ambience category",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Setting extraction user prompt template",
	})
}
