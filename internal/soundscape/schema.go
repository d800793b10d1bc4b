package soundscape

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// pageSchema is the normative shape of one output entry: either a merged
// soundscape record or a raw fallback tagged with its page.
const pageSchema = `{
	"oneOf": [
		{
			"type": "object",
			"properties": {
				"setting": {
					"type": "object",
					"properties": {
						"location": {"type": "string"},
						"environment": {"type": "string"}
					},
					"additionalProperties": false
				},
				"ambient_sounds": {"type": "array", "items": {"type": "string"}},
				"emotions": {"type": "array", "items": {"type": "string"}},
				"genre_candidates": {"type": "array", "items": {"type": "string"}},
				"page": {"type": "integer", "minimum": 1}
			},
			"required": ["setting", "ambient_sounds", "emotions", "genre_candidates"],
			"additionalProperties": false
		},
		{
			"type": "object",
			"properties": {
				"page": {"type": "integer", "minimum": 1},
				"raw": {"type": "string"}
			},
			"required": ["page", "raw"],
			"additionalProperties": false
		}
	]
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compiled() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("soundscape.json", strings.NewReader(pageSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to load soundscape schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("soundscape.json")
	})
	return compiledSchema, schemaErr
}

// ValidateResult checks a merged PageResult against the normative output
// schema. Violations indicate a normalizer/merger bug, not bad model
// output, so callers log rather than fail.
func ValidateResult(res PageResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	schema, err := compiled()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode result for validation: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("result does not match soundscape schema: %w", err)
	}
	return nil
}
