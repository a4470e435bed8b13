package words

import (
	"time"

	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/quality"
)

// mergeWords folds src into dst and reports whether dst changed.
//
// Policy: existing data wins. A dst field is only taken from src when dst's
// value is empty or a known placeholder. List fields are unioned with order
// preserved (dst first). Provenance tags are always unioned. Scores are
// recomputed when anything changed.
func mergeWords(dst, src *domain.Word, now time.Time) bool {
	if dst == nil || src == nil {
		return false
	}

	changed := false

	changed = mergeMorphemes(&dst.Morphemes, src.Morphemes) || changed

	changed = fillString(&dst.Etymology.LanguageOfOrigin, src.Etymology.LanguageOfOrigin) || changed
	changed = fillString(&dst.Etymology.HistoricalOrigins, src.Etymology.HistoricalOrigins) || changed
	changed = fillString(&dst.Etymology.WordEvolution, src.Etymology.WordEvolution) || changed
	changed = fillString(&dst.Etymology.CulturalVariations, src.Etymology.CulturalVariations) || changed

	changed = fillPrimary(&dst.Defs.Primary, src.Defs.Primary) || changed
	changed = unionStrings(&dst.Defs.Standard, src.Defs.Standard) || changed
	changed = unionStrings(&dst.Defs.Extended, src.Defs.Extended) || changed
	changed = unionStrings(&dst.Defs.Contextual, src.Defs.Contextual) || changed
	changed = unionStrings(&dst.Defs.Specialized, src.Defs.Specialized) || changed

	changed = fillString(&dst.Forms.Noun, src.Forms.Noun) || changed
	changed = fillString(&dst.Forms.Verb, src.Forms.Verb) || changed
	changed = fillString(&dst.Forms.Adjective, src.Forms.Adjective) || changed
	changed = fillString(&dst.Forms.Adverb, src.Forms.Adverb) || changed
	changed = unionStrings(&dst.Forms.OtherInflections, src.Forms.OtherInflections) || changed

	changed = fillString(&dst.Analysis.PartsOfSpeech, src.Analysis.PartsOfSpeech) || changed
	changed = unionStrings(&dst.Analysis.Synonyms, src.Analysis.Synonyms) || changed
	changed = unionStrings(&dst.Analysis.Antonyms, src.Analysis.Antonyms) || changed
	changed = unionStrings(&dst.Analysis.Collocations, src.Analysis.Collocations) || changed
	changed = unionStrings(&dst.Analysis.UsageExamples, src.Analysis.UsageExamples) || changed
	changed = fillString(&dst.Analysis.ExampleSentence, src.Analysis.ExampleSentence) || changed

	for _, tag := range src.SourceApis {
		if !dst.HasSource(tag) {
			dst.AddSource(tag)
			changed = true
		}
	}

	if changed {
		quality.Apply(dst)
		dst.Touch(now)
	}
	return changed
}

// mergeMorphemes fills missing parts. A root whose meaning is still the
// normalizer placeholder counts as missing.
func mergeMorphemes(dst *domain.MorphemeBreakdown, src domain.MorphemeBreakdown) bool {
	changed := false

	if dst.Prefix == nil && src.Prefix != nil {
		p := *src.Prefix
		dst.Prefix = &p
		changed = true
	}
	if dst.Suffix == nil && src.Suffix != nil {
		sfx := *src.Suffix
		dst.Suffix = &sfx
		changed = true
	}

	dstRootEmpty := dst.Root.Meaning == "" || dst.Root.Meaning == domain.RootMeaningPlaceholder
	srcRootReal := src.Root.Text != "" && src.Root.Meaning != "" && src.Root.Meaning != domain.RootMeaningPlaceholder
	if dstRootEmpty && srcRootReal {
		dst.Root = src.Root
		changed = true
	}
	return changed
}

// fillString sets *dst to src when dst is empty and src is not.
func fillString(dst *string, src string) bool {
	if *dst != "" || src == "" {
		return false
	}
	*dst = src
	return true
}

// fillPrimary is fillString with the "No definition available" fallback
// treated as empty.
func fillPrimary(dst *string, src string) bool {
	if src == "" || src == domain.NoDefinitionFallback {
		return false
	}
	if *dst != "" && *dst != domain.NoDefinitionFallback {
		return false
	}
	*dst = src
	return true
}

// unionStrings appends src values missing from dst, preserving dst order.
func unionStrings(dst *[]string, src []string) bool {
	if len(src) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(*dst))
	for _, v := range *dst {
		seen[v] = struct{}{}
	}
	changed := false
	for _, v := range src {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		*dst = append(*dst, v)
		changed = true
	}
	return changed
}
