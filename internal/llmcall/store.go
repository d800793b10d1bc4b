package llmcall

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the llm_calls table. Applied by NewStore.
const Schema = `
CREATE TABLE IF NOT EXISTS llm_calls (
	id TEXT PRIMARY KEY,
	timestamp INTEGER NOT NULL,
	run_id TEXT,
	page INTEGER,
	stage TEXT NOT NULL,
	prompt_key TEXT,
	provider TEXT,
	model TEXT,
	input_tokens INTEGER,
	output_tokens INTEGER,
	latency_ms INTEGER,
	success INTEGER NOT NULL,
	error TEXT,
	response TEXT
);
CREATE INDEX IF NOT EXISTS idx_llm_calls_run ON llm_calls(run_id) WHERE run_id != '';
CREATE INDEX IF NOT EXISTS idx_llm_calls_ts ON llm_calls(timestamp);
`

// Store persists Call entries to a SQLite table asynchronously. Writes are
// queued and batched; a full buffer drops entries rather than applying
// backpressure to the pipeline.
type Store struct {
	db   *sql.DB
	ch   chan *Call
	done chan struct{}
	once sync.Once
}

// NewStore opens (or creates) the call database at path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open call database: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply call schema: %w", err)
	}

	s := &Store{
		db:   db,
		ch:   make(chan *Call, 1024),
		done: make(chan struct{}),
	}
	go s.flushLoop()
	return s, nil
}

// RecordAsync queues a call for async persistence. Non-blocking.
func (s *Store) RecordAsync(c *Call) {
	select {
	case s.ch <- c:
	default:
		// buffer full; drop rather than stall a stage
	}
}

// Close drains the buffer, stops the flush goroutine and closes the db.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.ch)
		<-s.done
	})
	return s.db.Close()
}

func (s *Store) flushLoop() {
	defer close(s.done)

	batch := make([]*Call, 0, 64)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case c, ok := <-s.ch:
			if !ok {
				s.flushBatch(batch)
				return
			}
			batch = append(batch, c)
			if len(batch) >= 64 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *Store) flushBatch(batch []*Call) {
	if len(batch) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		return
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO llm_calls
		(id, timestamp, run_id, page, stage, prompt_key, provider, model,
		 input_tokens, output_tokens, latency_ms, success, error, response)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, c := range batch {
		success := 0
		if c.Success {
			success = 1
		}
		if _, err := stmt.Exec(
			c.ID, c.Timestamp.UnixMilli(), c.RunID, c.Page, c.Stage,
			c.PromptKey, c.Provider, c.Model, c.InputTokens, c.OutputTokens,
			c.LatencyMs, success, c.Error, c.Response,
		); err != nil {
			tx.Rollback()
			return
		}
	}
	tx.Commit()
}

// CountByRun returns how many calls were recorded for a run.
func (s *Store) CountByRun(runID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM llm_calls WHERE run_id = ?`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count calls: %w", err)
	}
	return count, nil
}

// ListByRun returns the calls recorded for a run, oldest first.
func (s *Store) ListByRun(runID string) ([]*Call, error) {
	rows, err := s.db.Query(`SELECT id, timestamp, run_id, page, stage, prompt_key,
		provider, model, input_tokens, output_tokens, latency_ms, success, error, response
		FROM llm_calls WHERE run_id = ? ORDER BY timestamp ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query calls: %w", err)
	}
	defer rows.Close()

	var calls []*Call
	for rows.Next() {
		var c Call
		var ts int64
		var success int
		if err := rows.Scan(&c.ID, &ts, &c.RunID, &c.Page, &c.Stage, &c.PromptKey,
			&c.Provider, &c.Model, &c.InputTokens, &c.OutputTokens, &c.LatencyMs,
			&success, &c.Error, &c.Response); err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		c.Timestamp = time.UnixMilli(ts).UTC()
		c.Success = success == 1
		calls = append(calls, &c)
	}
	return calls, rows.Err()
}
