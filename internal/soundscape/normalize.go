package soundscape

import (
	"encoding/json"
	"strings"
)

// Normalize converts the pipeline's final raw output into a PageResult.
// Malformed JSON is an expected condition, never an error: the result then
// carries the raw string verbatim alongside the unit's position. Missing
// keys are treated as absent; list fields that arrive as a bare string are
// coerced into an array.
func Normalize(raw string, page int) PageResult {
	res := PageResult{Page: page}

	sanitized := Sanitize(raw)
	if sanitized == "" {
		res.Raw = raw
		return res
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(sanitized), &doc); err != nil {
		res.Raw = raw
		return res
	}

	res.ParsedRaw = json.RawMessage(sanitized)
	res.Record = recordFromDoc(doc, page)
	return res
}

func recordFromDoc(doc map[string]any, page int) *Record {
	rec := &Record{Page: page}
	if s, ok := doc["setting"]; ok {
		rec.Setting = toSetting(s)
	}
	rec.AmbientSounds = toStringList(doc["ambient_sounds"])
	rec.Emotions = toStringList(doc["emotions"])
	rec.GenreCandidates = toStringList(doc["genre_candidates"])
	return rec
}

// toSetting accepts only an object shape; anything else counts as absent.
func toSetting(v any) *Setting {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	s := &Setting{}
	if loc, ok := m["location"].(string); ok {
		s.Location = strings.TrimSpace(loc)
	}
	if env, ok := m["environment"].(string); ok {
		s.Environment = strings.TrimSpace(env)
	}
	if s.Location == "" && s.Environment == "" {
		return nil
	}
	return s
}

// toStringList coerces a list field: arrays keep their string elements, a
// bare string becomes a comma-split array, everything else is absent.
func toStringList(v any) []string {
	switch val := v.(type) {
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}
