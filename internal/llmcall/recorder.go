package llmcall

import "github.com/jackzampolin/echo/internal/providers"

// Recorder handles fire-and-forget LLM call recording via a Store.
// A nil Recorder (or one without a store) records nothing.
type Recorder struct {
	store *Store
}

// NewRecorder creates a new LLM call recorder.
func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store}
}

// Record captures an LLM call asynchronously.
func (r *Recorder) Record(result *providers.ChatResult, opts RecordOptions) {
	if r == nil || r.store == nil || result == nil {
		return
	}
	r.store.RecordAsync(FromChatResult(result, opts))
}
