// Package legacy serves the built-in starter vocabulary that predates the
// database. The records are embedded in their historical camelCase shape
// and pass through the normalizer like any other source, so the embedded
// file is also a regression fixture for the legacy naming convention.
package legacy

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/normalizer"
)

//go:embed words.json
var wordsJSON []byte

// Source holds the normalized built-in vocabulary.
type Source struct {
	words  []domain.Word
	byText map[string]int
}

// NewSource decodes and normalizes the embedded vocabulary. Errors here
// mean the embedded file is broken, so callers treat them as fatal.
func NewSource() (*Source, error) {
	var raws []normalizer.RawWord
	if err := json.Unmarshal(wordsJSON, &raws); err != nil {
		return nil, fmt.Errorf("decode embedded vocabulary: %w", err)
	}

	s := &Source{
		words:  make([]domain.Word, 0, len(raws)),
		byText: make(map[string]int, len(raws)),
	}
	for _, raw := range raws {
		w, err := normalizer.Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("normalize embedded vocabulary: %w", err)
		}
		w.AddSource(domain.SourceLegacy)
		s.byText[w.Word] = len(s.words)
		s.words = append(s.words, *w)
	}
	return s, nil
}

// Words returns a copy of every built-in record.
func (s *Source) Words() []domain.Word {
	out := make([]domain.Word, len(s.words))
	copy(out, s.words)
	return out
}

// Lookup returns the built-in record for the normalized word text, or nil.
func (s *Source) Lookup(text string) *domain.Word {
	idx, ok := s.byText[domain.NormalizeText(text)]
	if !ok {
		return nil
	}
	w := s.words[idx]
	return &w
}
