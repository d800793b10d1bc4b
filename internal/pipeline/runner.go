// Package pipeline executes the fixed ordered list of analysis stages
// against one text unit at a time, threading each stage's declared context
// from earlier stage outputs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/echo/internal/llmcall"
	"github.com/jackzampolin/echo/internal/providers"
)

// Meta identifies the run and unit a stage call belongs to, for recording.
type Meta struct {
	RunID string
	Page  int
}

// Runner executes the stage sequence for one unit at a time. Stages run
// strictly in order; later stages consume earlier outputs, so there is no
// parallelism within a unit.
type Runner struct {
	client   providers.LLMClient
	stages   []Stage
	logger   *slog.Logger
	recorder *llmcall.Recorder
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder enables LLM call recording.
func WithRecorder(rec *llmcall.Recorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithModelCorrection runs the final structure correction as a model pass
// instead of the local sanitizer.
func WithModelCorrection() Option {
	return func(r *Runner) { r.stages = Stages(true) }
}

// New creates a Runner bound to the given client.
func New(client providers.LLMClient, opts ...Option) *Runner {
	r := &Runner{
		client: client,
		stages: Stages(false),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StageKeys returns the keys of the configured stages, in execution order.
func (r *Runner) StageKeys() []string {
	keys := make([]string, len(r.stages))
	for i, st := range r.stages {
		keys[i] = st.Key
	}
	return keys
}

// Analyze runs all stages against one text unit and returns the final
// stage's raw output plus every stage's output by key. The runner does not
// enforce output shape; stage contract violations are logged and left for
// normalization to absorb. A failed model call aborts this unit only.
func (r *Runner) Analyze(ctx context.Context, text string, meta Meta) (string, map[string]string, error) {
	outputs := make(map[string]string, len(r.stages))
	var final string

	for _, st := range r.stages {
		in := StageInput{Text: text, Prior: outputs}

		var out string
		if st.Run != nil {
			local, err := st.Run(in)
			if err != nil {
				return "", outputs, fmt.Errorf("stage %s: %w", st.Key, err)
			}
			out = local
		} else {
			result, err := r.client.Chat(ctx, st.Build(in))
			if r.recorder != nil {
				r.recorder.Record(result, llmcall.RecordOptions{
					RunID:     meta.RunID,
					Page:      meta.Page,
					Stage:     st.Key,
					PromptKey: "stages." + st.Key + ".user",
				})
			}
			if err != nil {
				return "", outputs, fmt.Errorf("stage %s: %w", st.Key, err)
			}
			out = result.Content
			r.logger.Debug("stage complete",
				"stage", st.Key,
				"page", meta.Page,
				"tokens", result.TotalTokens,
				"latency", result.ExecutionTime,
			)
		}

		if st.Validate != nil {
			if verr := st.Validate(out); verr != nil {
				r.logger.Debug("stage output violates declared shape",
					"stage", st.Key, "page", meta.Page, "issue", verr)
			}
		}

		outputs[st.Key] = out
		final = out
	}

	return final, outputs, nil
}
