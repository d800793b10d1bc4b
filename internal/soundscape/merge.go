package soundscape

// CarryState tracks the last known concrete value per field category.
// Each slot is updated only when a page supplies original concrete data;
// a page that merely inherited a carried value never becomes the source.
type CarryState struct {
	Setting  *Setting
	Ambient  []string
	Emotions []string
	Genres   []string
}

// Merger applies the cross-page carry-forward correction. It owns a single
// CarryState for the lifetime of one run and must see pages in ascending
// order; recency is defined by unit order, not completion time. Not safe
// for concurrent use.
type Merger struct {
	carry CarryState
}

// NewMerger creates a merger with empty carry state.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge corrects one page's result and updates the carry state.
//
// Per category, in fixed order (setting, ambient_sounds, emotions,
// genre_candidates): a generic incoming value is replaced wholesale by the
// carried value when one exists, otherwise left generic; a concrete incoming
// value becomes the new carry source. Replacement never refreshes the carry
// state.
//
// Unparsed results pass through untouched: every category counts as generic
// for them and they never update the carry state.
func (m *Merger) Merge(res PageResult) PageResult {
	if res.Unparsed() {
		return res
	}

	rec := res.Record.Clone()

	if rec.Setting.Generic() {
		if m.carry.Setting != nil {
			rec.Setting = m.carry.Setting.Clone()
		}
	} else {
		m.carry.Setting = rec.Setting.Clone()
	}

	rec.AmbientSounds = m.mergeList(rec.AmbientSounds, &m.carry.Ambient)
	rec.Emotions = m.mergeList(rec.Emotions, &m.carry.Emotions)
	rec.GenreCandidates = m.mergeList(rec.GenreCandidates, &m.carry.Genres)

	res.Record = rec
	return res
}

// MergeAll corrects a whole sequence in order, preserving length and order.
func (m *Merger) MergeAll(results []PageResult) []PageResult {
	out := make([]PageResult, len(results))
	for i, res := range results {
		out[i] = m.Merge(res)
	}
	return out
}

func (m *Merger) mergeList(incoming []string, carry *[]string) []string {
	if len(incoming) == 0 {
		if *carry != nil {
			return cloneList(*carry)
		}
		return incoming
	}
	*carry = cloneList(incoming)
	return incoming
}
