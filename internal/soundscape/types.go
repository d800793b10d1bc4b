// Package soundscape holds the canonical structured result of narrative
// analysis and the logic that turns raw model output into a consistent,
// schema-valid stream of per-page records.
package soundscape

import "encoding/json"

// Generic environment tags. A setting whose environment is one of these
// carries no usable scene information and is eligible for carry-forward.
const (
	EnvUnknown = "unknown"
	EnvNeutral = "neutral"
)

// Setting describes where a scene takes place.
type Setting struct {
	Location    string `json:"location,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// Generic reports whether the setting carries no concrete scene information.
// Only the environment is consulted; a concrete location with a generic
// environment still counts as generic.
func (s *Setting) Generic() bool {
	if s == nil {
		return true
	}
	switch s.Environment {
	case "", EnvUnknown, EnvNeutral:
		return true
	}
	return false
}

// Clone returns an independent copy.
func (s *Setting) Clone() *Setting {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Record is the canonical structured soundscape for one text unit.
// Nil fields mean the stage supplied no data for that category.
type Record struct {
	Setting         *Setting `json:"setting,omitempty"`
	AmbientSounds   []string `json:"ambient_sounds,omitempty"`
	Emotions        []string `json:"emotions,omitempty"`
	GenreCandidates []string `json:"genre_candidates,omitempty"`
	Page            int      `json:"page,omitempty"`
}

// Clone returns a deep copy so merged records can be handed off immutably.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := &Record{
		Setting: r.Setting.Clone(),
		Page:    r.Page,
	}
	c.AmbientSounds = cloneList(r.AmbientSounds)
	c.Emotions = cloneList(r.Emotions)
	c.GenreCandidates = cloneList(r.GenreCandidates)
	return c
}

func cloneList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// PageResult is the outcome of analysing one text unit: either a typed
// Record, or the raw final-stage output when it could not be parsed.
type PageResult struct {
	Page   int
	Record *Record
	Raw    string

	// ParsedRaw preserves the sanitized JSON exactly as parsed, for
	// single-unit passthrough output.
	ParsedRaw json.RawMessage
}

// Unparsed reports whether this unit's final output failed to parse.
func (p PageResult) Unparsed() bool {
	return p.Record == nil
}

// mergedRecord fixes the key order and always emits all four categories,
// matching the shape of the merged multi-page document.
type mergedRecord struct {
	Setting         Setting  `json:"setting"`
	AmbientSounds   []string `json:"ambient_sounds"`
	Emotions        []string `json:"emotions"`
	GenreCandidates []string `json:"genre_candidates"`
	Page            int      `json:"page,omitempty"`
}

// rawRecord is the fallback shape for units whose output never parsed.
type rawRecord struct {
	Page int    `json:"page"`
	Raw  string `json:"raw"`
}

// MarshalJSON emits the merged record shape, or the raw fallback shape for
// unparsed units. Every category key is always present after merging; lists
// serialize as empty arrays, never null.
func (p PageResult) MarshalJSON() ([]byte, error) {
	if p.Unparsed() {
		return json.Marshal(rawRecord{Page: p.Page, Raw: p.Raw})
	}

	rec := p.Record
	out := mergedRecord{
		AmbientSounds:   emptyIfNil(rec.AmbientSounds),
		Emotions:        emptyIfNil(rec.Emotions),
		GenreCandidates: emptyIfNil(rec.GenreCandidates),
		Page:            p.Page,
	}
	if rec.Setting != nil {
		out.Setting = *rec.Setting
	}
	return json.Marshal(out)
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
