package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/echo/internal/api"
	"github.com/jackzampolin/echo/internal/prompts"
	"github.com/jackzampolin/echo/internal/prompts/ambience"
	"github.com/jackzampolin/echo/internal/prompts/correct"
	"github.com/jackzampolin/echo/internal/prompts/emotion"
	"github.com/jackzampolin/echo/internal/prompts/format"
	"github.com/jackzampolin/echo/internal/prompts/setting"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect the embedded stage prompts",
}

// promptInfo is the listing row for a registered prompt.
type promptInfo struct {
	Key         string   `json:"key" yaml:"key"`
	Description string   `json:"description" yaml:"description"`
	Variables   []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	Hash        string   `json:"hash" yaml:"hash"`
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all embedded prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newPromptResolver()
		all := r.AllEmbedded()
		rows := make([]promptInfo, 0, len(all))
		for _, p := range all {
			rows = append(rows, promptInfo{
				Key:         p.Key,
				Description: p.Description,
				Variables:   p.Variables,
				Hash:        p.Hash[:12],
			})
		}
		return api.Output(rows)
	},
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print the full text of an embedded prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newPromptResolver()
		p, err := r.Resolve(args[0])
		if err != nil {
			return err
		}
		fmt.Println(p.Text)
		return nil
	},
}

func newPromptResolver() *prompts.Resolver {
	r := prompts.NewResolver(newLogger())
	setting.RegisterPrompts(r)
	ambience.RegisterPrompts(r)
	emotion.RegisterPrompts(r)
	format.RegisterPrompts(r)
	correct.RegisterPrompts(r)
	return r
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)
}
