// Package correct holds the model-side JSON structure correction prompts.
// The pipeline's default correction pass is the local sanitizer in the
// soundscape package; these prompts back the optional model-side pass.
package correct

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
	SystemPromptKey = "stages.correct.system"
	UserPromptKey   = "stages.correct.user"
)

// SystemPrompt returns the system prompt for structure correction.
func SystemPrompt() string {
	return systemPrompt
}

// UserPromptData carries the format stage output to correct.
type UserPromptData struct {
	FormatOutput string
}

// UserPrompt builds the user prompt for structure correction.
func UserPrompt(data UserPromptData) string {
	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, data); err != nil {
		return userPromptTmpl
	}
	return buf.String()
}

// BuildRequest creates the structure correction chat request.
func BuildRequest(formatOutput string) *providers.ChatRequest {
	return &providers.ChatRequest{
		Messages: []providers.Message{
			{Role: "system", Content: SystemPrompt()},
			{Role: "user", Content: UserPrompt(UserPromptData{FormatOutput: formatOutput})},
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

// RegisterPrompts registers the correction prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         SystemPromptKey,
		Text:        systemPrompt,
		Description: "Structure correction system prompt - strips non-JSON wrapping from the final object",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         UserPromptKey,
		Text:        userPromptTmpl,
		Description: "Structure correction user prompt template",
	})
}
