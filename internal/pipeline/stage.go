package pipeline

import (
	"github.com/jackzampolin/echo/internal/prompts/ambience"
	"github.com/jackzampolin/echo/internal/prompts/correct"
	"github.com/jackzampolin/echo/internal/prompts/emotion"
	"github.com/jackzampolin/echo/internal/prompts/format"
	"github.com/jackzampolin/echo/internal/prompts/setting"
	"github.com/jackzampolin/echo/internal/providers"
	"github.com/jackzampolin/echo/internal/soundscape"
)

// Stage keys, in execution order.
const (
	StageSetting  = "setting"
	StageAmbience = "ambience"
	StageEmotion  = "emotion"
	StageFormat   = "format"
	StageCorrect  = "correct"
)

// StageInput carries the unit text and the raw outputs of all completed
// stages, keyed by stage key.
type StageInput struct {
	Text  string
	Prior map[string]string
}

// Stage describes one analysis step: the role it plays, which prior stage
// outputs it consumes, and how it executes. Exactly one of Build (model
// call) or Run (local transform) is set. Validate checks the declared
// output shape; violations are logged, never fatal. Shape enforcement
// happens downstream in normalization.
type Stage struct {
	Key      string
	Role     string
	Context  []string
	Build    func(in StageInput) *providers.ChatRequest
	Run      func(in StageInput) (string, error)
	Validate func(output string) error
}

// Stages returns the fixed ordered stage list. With modelCorrection the
// final structure correction is a model pass using the embedded correct
// prompts; otherwise it is the local sanitizer.
func Stages(modelCorrection bool) []Stage {
	correctStage := Stage{
		Key:      StageCorrect,
		Role:     "JSON Structure Corrector",
		Context:  []string{StageFormat},
		Validate: correct.ValidateOutput,
	}
	if modelCorrection {
		correctStage.Build = func(in StageInput) *providers.ChatRequest {
			return correct.BuildRequest(in.Prior[StageFormat])
		}
	} else {
		correctStage.Run = func(in StageInput) (string, error) {
			out := soundscape.Sanitize(in.Prior[StageFormat])
			if out == "" {
				// No object found; pass the original through so the
				// raw fallback preserves what the model actually said.
				return in.Prior[StageFormat], nil
			}
			return out, nil
		}
	}

	return []Stage{
		{
			Key:  StageSetting,
			Role: "Literary Setting Analyst",
			Build: func(in StageInput) *providers.ChatRequest {
				return setting.BuildRequest(in.Text)
			},
			Validate: setting.ValidateOutput,
		},
		{
			Key:  StageAmbience,
			Role: "Ambient Detail Extractor",
			Build: func(in StageInput) *providers.ChatRequest {
				return ambience.BuildRequest(in.Text)
			},
			Validate: ambience.ValidateOutput,
		},
		{
			Key:     StageEmotion,
			Role:    "Narrative Emotion Profiler",
			Context: []string{StageSetting, StageAmbience},
			Build: func(in StageInput) *providers.ChatRequest {
				return emotion.BuildRequest(in.Text, in.Prior[StageSetting], in.Prior[StageAmbience])
			},
			Validate: emotion.ValidateOutput,
		},
		{
			Key:     StageFormat,
			Role:    "Literary JSON Formatter",
			Context: []string{StageSetting, StageAmbience, StageEmotion},
			Build: func(in StageInput) *providers.ChatRequest {
				return format.BuildRequest(in.Prior[StageSetting], in.Prior[StageAmbience], in.Prior[StageEmotion])
			},
			Validate: format.ValidateOutput,
		},
		correctStage,
	}
}
