package normalizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/quality"
)

// Normalize converts a raw record into a canonical Word. It never fails on
// missing optional fields; the only error is domain.ErrNormalization when
// the raw input lacks word text entirely.
func Normalize(raw RawWord) (*domain.Word, error) {
	return NormalizeAt(raw, time.Now().UTC())
}

// NormalizeAt is Normalize with an explicit clock, for tests.
func NormalizeAt(raw RawWord, now time.Time) (*domain.Word, error) {
	text := domain.NormalizeText(raw.Word)
	if text == "" {
		return nil, fmt.Errorf("raw record has no word text: %w", domain.ErrNormalization)
	}

	w := &domain.Word{
		ID:   parseID(raw.ID),
		Word: text,
		Etymology: domain.Etymology{
			LanguageOfOrigin:   strings.TrimSpace(raw.Etymology.LanguageOfOrigin),
			HistoricalOrigins:  strings.TrimSpace(raw.Etymology.HistoricalOrigins),
			WordEvolution:      strings.TrimSpace(raw.Etymology.WordEvolution),
			CulturalVariations: strings.TrimSpace(raw.Etymology.CulturalVariations),
		},
		Defs: domain.Definitions{
			Primary:     strings.TrimSpace(raw.Definitions.Primary),
			Standard:    cleanList(raw.Definitions.Standard),
			Extended:    cleanList(raw.Definitions.Extended),
			Contextual:  cleanList(raw.Definitions.Contextual),
			Specialized: cleanList(raw.Definitions.Specialized),
		},
		Forms: domain.WordForms{
			Noun:             strings.TrimSpace(raw.Forms.Noun),
			Verb:             strings.TrimSpace(raw.Forms.Verb),
			Adjective:        strings.TrimSpace(raw.Forms.Adjective),
			Adverb:           strings.TrimSpace(raw.Forms.Adverb),
			OtherInflections: cleanList(raw.Forms.OtherInflections),
		},
		Analysis: domain.Analysis{
			PartsOfSpeech:   strings.TrimSpace(strings.ToLower(raw.Analysis.PartsOfSpeech)),
			Synonyms:        cleanList(raw.Analysis.Synonyms),
			Antonyms:        cleanList(raw.Analysis.Antonyms),
			Collocations:    cleanList(raw.Analysis.Collocations),
			UsageExamples:   cleanList(raw.Analysis.UsageExamples),
			ExampleSentence: strings.TrimSpace(raw.Analysis.ExampleSentence),
		},
		SourceApis: cleanList(raw.SourceApis),
	}

	w.Morphemes = normalizeMorphemes(raw.Morphemes, text)

	// Primary definition fallback: explicit → first standard → literal.
	if w.Defs.Primary == "" {
		if len(w.Defs.Standard) > 0 {
			w.Defs.Primary = w.Defs.Standard[0]
		} else {
			w.Defs.Primary = domain.NoDefinitionFallback
		}
	}

	w.CreatedAt = timestampOr(raw.CreatedAt, now)
	w.UpdatedAt = timestampOr(raw.UpdatedAt, now)

	quality.Apply(w)
	return w, nil
}

// FromWord converts a canonical record back into the raw shape. Used when a
// canonical record must pass through Normalize again (idempotence tests,
// re-imports of exported data).
func FromWord(w *domain.Word) RawWord {
	createdAt := w.CreatedAt
	updatedAt := w.UpdatedAt
	raw := RawWord{
		ID:   w.ID.String(),
		Word: w.Word,
		Morphemes: &RawMorphemes{
			Prefix: w.Morphemes.Prefix,
			Root:   &w.Morphemes.Root,
			Suffix: w.Morphemes.Suffix,
		},
		Etymology: RawEtymology{
			LanguageOfOrigin:   w.Etymology.LanguageOfOrigin,
			HistoricalOrigins:  w.Etymology.HistoricalOrigins,
			WordEvolution:      w.Etymology.WordEvolution,
			CulturalVariations: w.Etymology.CulturalVariations,
		},
		Definitions: RawDefinitions{
			Primary:     w.Defs.Primary,
			Standard:    FlexStrings(w.Defs.Standard),
			Extended:    FlexStrings(w.Defs.Extended),
			Contextual:  FlexBlock(w.Defs.Contextual),
			Specialized: FlexBlock(w.Defs.Specialized),
		},
		Forms: RawWordForms{
			Noun:             w.Forms.Noun,
			Verb:             w.Forms.Verb,
			Adjective:        w.Forms.Adjective,
			Adverb:           w.Forms.Adverb,
			OtherInflections: FlexStrings(w.Forms.OtherInflections),
		},
		Analysis: RawAnalysis{
			PartsOfSpeech:   w.Analysis.PartsOfSpeech,
			Synonyms:        FlexStrings(w.Analysis.Synonyms),
			Antonyms:        FlexStrings(w.Analysis.Antonyms),
			Collocations:    FlexStrings(w.Analysis.Collocations),
			UsageExamples:   FlexStrings(w.Analysis.UsageExamples),
			ExampleSentence: w.Analysis.ExampleSentence,
		},
		SourceApis: w.SourceApis,
		CreatedAt:  &createdAt,
		UpdatedAt:  &updatedAt,
	}
	return raw
}

func normalizeMorphemes(raw *RawMorphemes, word string) domain.MorphemeBreakdown {
	mb := domain.MorphemeBreakdown{}

	if raw != nil {
		if m := cleanMorpheme(raw.Prefix); m != nil {
			mb.Prefix = m
		}
		if m := cleanMorpheme(raw.Suffix); m != nil {
			mb.Suffix = m
		}
		if m := cleanMorpheme(raw.Root); m != nil {
			mb.Root = *m
		}
	}

	// Root is required at the type level. Synthesize the placeholder
	// sentinel so downstream components can tell "unknown" from "empty".
	if mb.Root.Text == "" {
		mb.Root = domain.Morpheme{Text: word, Meaning: domain.RootMeaningPlaceholder}
	}

	return mb
}

func cleanMorpheme(m *domain.Morpheme) *domain.Morpheme {
	if m == nil {
		return nil
	}
	out := domain.Morpheme{
		Text:    strings.TrimSpace(m.Text),
		Meaning: strings.TrimSpace(m.Meaning),
		Origin:  strings.TrimSpace(m.Origin),
	}
	if out.Text == "" {
		return nil
	}
	return &out
}

// cleanList trims entries, drops empties, and removes duplicates while
// preserving first-seen order.
func cleanList[S ~[]string](list S) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseID(s string) uuid.UUID {
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	return uuid.New()
}

func timestampOr(t *time.Time, fallback time.Time) time.Time {
	if t != nil && !t.IsZero() {
		return *t
	}
	return fallback
}
