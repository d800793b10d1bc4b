package ambience

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
	SystemPromptKey = "stages.ambience.system"
	UserPromptKey   = "stages.ambience.user"
)

// SystemPrompt returns the system prompt for ambience extraction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPromptData carries the template variables for the user prompt.
type UserPromptData struct {
	PageText string
}

// UserPrompt builds the user prompt for ambience extraction.
func UserPrompt(data UserPromptData) string {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return userPromptTmpl
	}
	return buf.String()
}

// BuildRequest creates the ambience extraction chat request.
func BuildRequest(pageText string) *providers.ChatRequest {
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt()},
			{Role: "user", Content: UserPrompt(UserPromptData{PageText: pageText})},
		},
	}
}

// ValidateOutput checks that the stage output has the required labelled line.
func ValidateOutput(output string) error {
	if !strings.Contains(output, "ambient_sounds:") {
		return fmt.Errorf("missing ambient_sounds line")
	}
	return nil
}

// RegisterPrompts registers the ambience prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Ambience extraction system prompt - lists audible background elements",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Ambience extraction user prompt template",
	})
}
