package soundscape

import "testing"

func TestValidateResult(t *testing.T) {
	t.Run("merged record passes", func(t *testing.T) {
		res := PageResult{
			Page: 1,
			Record: &Record{
				Setting:         &Setting{Location: "dock", Environment: "coastal"},
				AmbientSounds:   []string{"gulls"},
				Emotions:        []string{"calm"},
				GenreCandidates: []string{"drama"},
				Page:            1,
			},
		}
		if err := ValidateResult(res); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("empty merged record passes", func(t *testing.T) {
		res := PageResult{Page: 2, Record: &Record{Page: 2}}
		if err := ValidateResult(res); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("raw fallback passes", func(t *testing.T) {
		res := PageResult{Page: 3, Raw: "unparseable output"}
		if err := ValidateResult(res); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})

	t.Run("raw fallback without page fails", func(t *testing.T) {
		res := PageResult{Raw: "unparseable output"}
		if err := ValidateResult(res); err == nil {
			t.Error("page 0 serializes below the schema minimum, expected a violation")
		}
	})
}
