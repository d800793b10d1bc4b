package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/jackzampolin/echo/internal/providers"
)

func TestRunnerStageOrder(t *testing.T) {
	client := providers.NewMockClient()
	client.Responses = []string{
		"setting_location: lighthouse\nsetting_environment: coastal",
		"ambient_sounds: waves, gulls",
		"emotions: dread\ngenre_candidates: gothic",
		`{"setting": {"location": "lighthouse", "environment": "coastal"}, "ambient_sounds": ["waves"], "emotions": ["dread"], "genre_candidates": ["gothic"]}`,
	}

	r := New(client)
	final, outputs, err := r.Analyze(context.Background(), "page text", Meta{RunID: "run-1", Page: 1})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	// Four model stages; the fifth (correct) runs locally.
	if client.RequestCount() != 4 {
		t.Errorf("expected 4 model calls, got %d", client.RequestCount())
	}
	if len(outputs) != 5 {
		t.Errorf("expected 5 stage outputs, got %d", len(outputs))
	}

	keys := r.StageKeys()
	want := []string{StageSetting, StageAmbience, StageEmotion, StageFormat, StageCorrect}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("stage %d: expected %s, got %s", i, k, keys[i])
		}
	}

	if !strings.HasPrefix(final, "{") || !strings.HasSuffix(final, "}") {
		t.Errorf("final output should be the sanitized JSON object: %q", final)
	}
}

func TestRunnerThreadsContextBetweenStages(t *testing.T) {
	client := providers.NewMockClient()
	client.Responses = []string{
		"setting_location: cellar\nsetting_environment: underground",
		"ambient_sounds: dripping",
		"emotions: fear\ngenre_candidates: horror",
		`{"emotions": ["fear"]}`,
	}

	r := New(client)
	if _, _, err := r.Analyze(context.Background(), "some page", Meta{}); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	reqs := client.Requests()
	if len(reqs) != 4 {
		t.Fatalf("expected 4 requests, got %d", len(reqs))
	}

	// The emotion stage prompt must carry the setting and ambience outputs.
	emotionPrompt := reqs[2].Messages[len(reqs[2].Messages)-1].Content
	if !strings.Contains(emotionPrompt, "setting_location: cellar") {
		t.Errorf("emotion prompt missing setting output:\n%s", emotionPrompt)
	}
	if !strings.Contains(emotionPrompt, "ambient_sounds: dripping") {
		t.Errorf("emotion prompt missing ambience output:\n%s", emotionPrompt)
	}

	// The format stage prompt must carry all three analysis outputs.
	formatPrompt := reqs[3].Messages[len(reqs[3].Messages)-1].Content
	for _, fragment := range []string{"setting_location: cellar", "ambient_sounds: dripping", "emotions: fear"} {
		if !strings.Contains(formatPrompt, fragment) {
			t.Errorf("format prompt missing %q:\n%s", fragment, formatPrompt)
		}
	}
}

func TestRunnerLocalCorrectionSanitizes(t *testing.T) {
	client := providers.NewMockClient()
	client.Responses = []string{
		"s", "a", "e",
		"Here you go:\n```json\n{\"emotions\": [\"joy\"]}\n```",
	}

	r := New(client)
	final, _, err := r.Analyze(context.Background(), "text", Meta{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if final != `{"emotions": ["joy"]}` {
		t.Errorf("correction should strip decoration, got %q", final)
	}
}

func TestRunnerLocalCorrectionPassesThroughNonJSON(t *testing.T) {
	client := providers.NewMockClient()
	client.Responses = []string{"s", "a", "e", "no json here"}

	r := New(client)
	final, _, err := r.Analyze(context.Background(), "text", Meta{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if final != "no json here" {
		t.Errorf("non-JSON output must pass through verbatim, got %q", final)
	}
}

func TestRunnerModelCorrection(t *testing.T) {
	client := providers.NewMockClient()
	client.Responses = []string{"s", "a", "e", "{broken", `{"fixed": true}`}

	r := New(client, WithModelCorrection())
	final, _, err := r.Analyze(context.Background(), "text", Meta{})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if client.RequestCount() != 5 {
		t.Errorf("expected 5 model calls with model correction, got %d", client.RequestCount())
	}
	if final != `{"fixed": true}` {
		t.Errorf("unexpected final output: %q", final)
	}
}

func TestRunnerStageFailure(t *testing.T) {
	client := providers.NewMockClient()
	client.FailAfter = 2

	r := New(client)
	_, outputs, err := r.Analyze(context.Background(), "text", Meta{Page: 3})
	if err == nil {
		t.Fatal("expected error from failing stage")
	}
	if !strings.Contains(err.Error(), StageEmotion) {
		t.Errorf("error should name the failed stage: %v", err)
	}
	if len(outputs) != 2 {
		t.Errorf("expected outputs from the 2 completed stages, got %d", len(outputs))
	}
}

func TestRunnerContextCancellation(t *testing.T) {
	client := providers.NewMockClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client.RespondFunc = func(req *providers.ChatRequest) (string, error) {
		return "", ctx.Err()
	}

	r := New(client)
	if _, _, err := r.Analyze(ctx, "text", Meta{}); err == nil {
		t.Fatal("expected error after cancellation")
	}
}
