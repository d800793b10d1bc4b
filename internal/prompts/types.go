// Package prompts provides prompt management with embedded defaults.
//
// Embedded .tmpl files in each stage package are the source of truth.
// Stage packages register their prompts with a Resolver at startup so the
// CLI can list them and the pipeline can resolve them by key.
package prompts

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: stages.setting.system
	Text        string   // The prompt text (Go template)
	Description string   // Human-readable description
	Variables   []string // Extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}
