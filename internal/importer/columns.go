package importer

import (
	"fmt"
	"strings"

	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/normalizer"
)

// Column keys recognized in the header row. Matching is case-insensitive
// and accepts both naming conventions seen in exported data.
var headerAliases = map[string]string{
	"word": "word",

	"primary":              "primary",
	"primary_definition":   "primary",
	"definition":           "primary",
	"standard":             "standard",
	"standard_definitions": "standard",
	"extended":             "extended",
	"contextual":           "contextual",
	"specialized":          "specialized",

	"language_origin":    "language_origin",
	"language_of_origin": "language_origin",
	"languageoforigin":   "language_origin",
	"origin":             "language_origin",
	"historical_origins": "historical_origins",
	"word_evolution":     "word_evolution",

	"root":         "root",
	"root_meaning": "root_meaning",
	"prefix":       "prefix",
	"suffix":       "suffix",

	"part_of_speech":  "part_of_speech",
	"parts_of_speech": "part_of_speech",
	"partsofspeech":   "part_of_speech",
	"pos":             "part_of_speech",

	"synonyms":            "synonyms",
	"antonyms":            "antonyms",
	"collocations":        "collocations",
	"common_collocations": "collocations",
	"usage_examples":      "usage_examples",
	"example_sentence":    "example_sentence",
	"example":             "example_sentence",

	"noun":      "noun",
	"verb":      "verb",
	"adjective": "adjective",
	"adverb":    "adverb",
}

// mapHeader resolves header cells to canonical column keys. A word column
// is mandatory; unknown headers are ignored so exports with extra columns
// still import.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for idx, cell := range header {
		key := strings.ToLower(strings.TrimSpace(cell))
		if canonical, ok := headerAliases[key]; ok {
			if _, dup := cols[canonical]; !dup {
				cols[canonical] = idx
			}
		}
	}
	if _, ok := cols["word"]; !ok {
		return nil, fmt.Errorf("%w: import header has no word column", domain.ErrValidation)
	}
	return cols, nil
}

// rawFromRow builds the raw record for one data row. List cells are
// comma-separated.
func rawFromRow(cols map[string]int, row []string) normalizer.RawWord {
	cell := func(key string) string {
		idx, ok := cols[key]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	list := func(key string) normalizer.FlexStrings {
		return normalizer.FlexStrings(splitList(cell(key)))
	}

	raw := normalizer.RawWord{
		Word:       cell("word"),
		SourceApis: []string{domain.SourceImport},
	}

	raw.Definitions.Primary = cell("primary")
	raw.Definitions.Standard = list("standard")
	raw.Definitions.Extended = list("extended")
	if v := cell("contextual"); v != "" {
		raw.Definitions.Contextual = normalizer.FlexBlock{v}
	}
	if v := cell("specialized"); v != "" {
		raw.Definitions.Specialized = normalizer.FlexBlock{v}
	}

	raw.Etymology.LanguageOfOrigin = cell("language_origin")
	raw.Etymology.HistoricalOrigins = cell("historical_origins")
	raw.Etymology.WordEvolution = cell("word_evolution")

	if root := cell("root"); root != "" {
		raw.Morphemes = &normalizer.RawMorphemes{
			Root: &domain.Morpheme{Text: root, Meaning: cell("root_meaning")},
		}
		if prefix := cell("prefix"); prefix != "" {
			raw.Morphemes.Prefix = &domain.Morpheme{Text: prefix}
		}
		if suffix := cell("suffix"); suffix != "" {
			raw.Morphemes.Suffix = &domain.Morpheme{Text: suffix}
		}
	}

	raw.Analysis.PartsOfSpeech = cell("part_of_speech")
	raw.Analysis.Synonyms = list("synonyms")
	raw.Analysis.Antonyms = list("antonyms")
	raw.Analysis.Collocations = list("collocations")
	raw.Analysis.UsageExamples = list("usage_examples")
	raw.Analysis.ExampleSentence = cell("example_sentence")

	raw.Forms.Noun = cell("noun")
	raw.Forms.Verb = cell("verb")
	raw.Forms.Adjective = cell("adjective")
	raw.Forms.Adverb = cell("adverb")

	return raw
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
