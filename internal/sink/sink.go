// Package sink persists the final analysis output. The file is written
// once with the full accumulated result, never incrementally, so the
// output is either complete and well-formed or absent.
package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackzampolin/echo/internal/soundscape"
)

// WritePages persists the merged multi-page sequence as a JSON array.
func WritePages(path string, results []soundscape.PageResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// WriteSingle persists a single-unit result. A parsed result is written as
// the JSON object exactly as the pipeline produced it; an unparsed result
// is written as the raw string verbatim, with no JSON envelope.
func WriteSingle(path string, res soundscape.PageResult) error {
	if res.Unparsed() {
		return writeFile(path, []byte(res.Raw))
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, res.ParsedRaw, "", "  "); err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	buf.WriteByte('\n')
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
