package enrich

import (
	"strings"
	"unicode"

	"github.com/vocabguru/backend/internal/domain"
)

// cleanData scrubs every free-text field of a record: control characters
// are stripped, whitespace is trimmed and collapsed, and list fields lose
// empty and duplicate entries. Reports whether anything changed.
func cleanData(w *domain.Word) bool {
	changed := false

	if normalized := domain.NormalizeText(w.Word); normalized != w.Word {
		w.Word = normalized
		changed = true
	}

	strs := []*string{
		&w.Morphemes.Root.Text, &w.Morphemes.Root.Meaning, &w.Morphemes.Root.Origin,
		&w.Etymology.LanguageOfOrigin, &w.Etymology.HistoricalOrigins,
		&w.Etymology.WordEvolution, &w.Etymology.CulturalVariations,
		&w.Defs.Primary,
		&w.Forms.Noun, &w.Forms.Verb, &w.Forms.Adjective, &w.Forms.Adverb,
		&w.Analysis.PartsOfSpeech, &w.Analysis.ExampleSentence,
	}
	if w.Morphemes.Prefix != nil {
		strs = append(strs, &w.Morphemes.Prefix.Text, &w.Morphemes.Prefix.Meaning, &w.Morphemes.Prefix.Origin)
	}
	if w.Morphemes.Suffix != nil {
		strs = append(strs, &w.Morphemes.Suffix.Text, &w.Morphemes.Suffix.Meaning, &w.Morphemes.Suffix.Origin)
	}
	for _, p := range strs {
		if cleaned := cleanString(*p); cleaned != *p {
			*p = cleaned
			changed = true
		}
	}

	lists := []*[]string{
		&w.Defs.Standard, &w.Defs.Extended, &w.Defs.Contextual, &w.Defs.Specialized,
		&w.Forms.OtherInflections,
		&w.Analysis.Synonyms, &w.Analysis.Antonyms, &w.Analysis.Collocations,
		&w.Analysis.UsageExamples,
	}
	for _, p := range lists {
		if cleaned, listChanged := cleanList(*p); listChanged {
			*p = cleaned
			changed = true
		}
	}

	return changed
}

// cleanString strips control characters and collapses runs of whitespace
// into single spaces.
func cleanString(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// cleanList cleans each entry and drops empties and duplicates.
func cleanList(in []string) ([]string, bool) {
	if len(in) == 0 {
		return in, false
	}

	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	changed := false
	for _, v := range in {
		cleaned := cleanString(v)
		if cleaned != v {
			changed = true
		}
		if cleaned == "" {
			changed = true
			continue
		}
		if _, dup := seen[cleaned]; dup {
			changed = true
			continue
		}
		seen[cleaned] = struct{}{}
		out = append(out, cleaned)
	}
	return out, changed
}
