package llmcall

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jackzampolin/echo/internal/providers"
)

// reopen closes the store (flushing the buffer) and opens a fresh one on
// the same file for querying.
func reopen(t *testing.T, store *Store, path string) *Store {
	t.Helper()
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })
	return reopened
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	call := &Call{
		ID:           "call-1",
		Timestamp:    time.Now().UTC().Truncate(time.Millisecond),
		LatencyMs:    42,
		RunID:        "run-1",
		Page:         3,
		Stage:        "setting",
		PromptKey:    "stages.setting.user",
		Provider:     "mock",
		Model:        "mistral",
		InputTokens:  100,
		OutputTokens: 20,
		Response:     "setting_location: pier",
		Success:      true,
	}
	store.RecordAsync(call)
	store = reopen(t, store, path)

	count, err := store.CountByRun("run-1")
	if err != nil {
		t.Fatalf("CountByRun failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 call, got %d", count)
	}

	calls, err := store.ListByRun("run-1")
	if err != nil {
		t.Fatalf("ListByRun failed: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}

	got := calls[0]
	if got.ID != "call-1" || got.Stage != "setting" || got.Page != 3 {
		t.Errorf("unexpected call: %+v", got)
	}
	if got.PromptKey != "stages.setting.user" {
		t.Errorf("expected prompt key, got %s", got.PromptKey)
	}
	if !got.Success {
		t.Error("expected success flag to round-trip")
	}
	if !got.Timestamp.Equal(call.Timestamp) {
		t.Errorf("timestamp mismatch: got %v, want %v", got.Timestamp, call.Timestamp)
	}
}

func TestStoreCountScopedByRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	for i, runID := range []string{"run-a", "run-a", "run-b"} {
		store.RecordAsync(&Call{
			ID:        "call-" + string(rune('a'+i)),
			Timestamp: time.Now().UTC(),
			RunID:     runID,
			Stage:     "setting",
			Success:   true,
		})
	}
	store = reopen(t, store, path)

	count, err := store.CountByRun("run-a")
	if err != nil {
		t.Fatalf("CountByRun failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 calls for run-a, got %d", count)
	}
}

func TestFromChatResult(t *testing.T) {
	result := &providers.ChatResult{
		Content:          "stage output",
		PromptTokens:     50,
		CompletionTokens: 10,
		TotalTokens:      60,
		ExecutionTime:    250 * time.Millisecond,
		Provider:         "mock",
		ModelUsed:        "mistral",
		Success:          true,
	}

	call := FromChatResult(result, RecordOptions{
		RunID:     "run-1",
		Page:      2,
		Stage:     "ambience",
		PromptKey: "stages.ambience.user",
	})

	if call.ID == "" {
		t.Error("expected a generated ID")
	}
	if call.LatencyMs != 250 {
		t.Errorf("expected 250ms latency, got %d", call.LatencyMs)
	}
	if call.Stage != "ambience" || call.Page != 2 || call.RunID != "run-1" {
		t.Errorf("unexpected call context: %+v", call)
	}
	if call.Response != "stage output" {
		t.Errorf("unexpected response: %q", call.Response)
	}
	if call.InputTokens != 50 || call.OutputTokens != 10 {
		t.Errorf("unexpected token counts: %+v", call)
	}
}

func TestRecorderNilSafe(t *testing.T) {
	var rec *Recorder
	// Must not panic with no store behind it.
	rec.Record(&providers.ChatResult{Success: true}, RecordOptions{Stage: "setting"})
}
