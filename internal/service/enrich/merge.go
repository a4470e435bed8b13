package enrich

import "github.com/vocabguru/backend/internal/domain"

// Overlay merging for AI payloads: within a requested section, generated
// values replace existing ones, but fields the payload omits are kept.
// Sections are only requested when their checklist fields are missing, so
// established content outside the request is never touched.

func overlayMorphemes(dst *domain.MorphemeBreakdown, src domain.MorphemeBreakdown) bool {
	changed := false
	if src.Prefix != nil && src.Prefix.Text != "" && !morphemeEqual(dst.Prefix, src.Prefix) {
		p := *src.Prefix
		dst.Prefix = &p
		changed = true
	}
	if src.Suffix != nil && src.Suffix.Text != "" && !morphemeEqual(dst.Suffix, src.Suffix) {
		sfx := *src.Suffix
		dst.Suffix = &sfx
		changed = true
	}
	if src.Root.Text != "" && src.Root.Meaning != "" &&
		src.Root.Meaning != domain.RootMeaningPlaceholder && src.Root != dst.Root {
		dst.Root = src.Root
		changed = true
	}
	return changed
}

func morphemeEqual(a, b *domain.Morpheme) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func overlayEtymology(dst *domain.Etymology, src domain.Etymology) bool {
	changed := false
	changed = overlay(&dst.LanguageOfOrigin, src.LanguageOfOrigin) || changed
	changed = overlay(&dst.HistoricalOrigins, src.HistoricalOrigins) || changed
	changed = overlay(&dst.WordEvolution, src.WordEvolution) || changed
	changed = overlay(&dst.CulturalVariations, src.CulturalVariations) || changed
	return changed
}

func overlayDefinitions(dst *domain.Definitions, src domain.Definitions) bool {
	changed := false
	if src.Primary != "" && src.Primary != domain.NoDefinitionFallback && src.Primary != dst.Primary {
		dst.Primary = src.Primary
		changed = true
	}
	changed = overlayList(&dst.Standard, src.Standard) || changed
	changed = overlayList(&dst.Extended, src.Extended) || changed
	changed = overlayList(&dst.Contextual, src.Contextual) || changed
	changed = overlayList(&dst.Specialized, src.Specialized) || changed
	return changed
}

func overlayAnalysis(dst *domain.Analysis, src domain.Analysis) bool {
	changed := false
	changed = overlay(&dst.PartsOfSpeech, src.PartsOfSpeech) || changed
	changed = overlayList(&dst.Synonyms, src.Synonyms) || changed
	changed = overlayList(&dst.Antonyms, src.Antonyms) || changed
	changed = overlayList(&dst.Collocations, src.Collocations) || changed
	changed = overlayList(&dst.UsageExamples, src.UsageExamples) || changed
	changed = overlay(&dst.ExampleSentence, src.ExampleSentence) || changed
	return changed
}

func overlayForms(dst *domain.WordForms, src domain.WordForms) bool {
	changed := false
	changed = overlay(&dst.Noun, src.Noun) || changed
	changed = overlay(&dst.Verb, src.Verb) || changed
	changed = overlay(&dst.Adjective, src.Adjective) || changed
	changed = overlay(&dst.Adverb, src.Adverb) || changed
	changed = overlayList(&dst.OtherInflections, src.OtherInflections) || changed
	return changed
}

func overlay(dst *string, src string) bool {
	if src == "" || src == *dst {
		return false
	}
	*dst = src
	return true
}

func overlayList(dst *[]string, src []string) bool {
	cleaned := make([]string, 0, len(src))
	for _, v := range src {
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 || listEqual(*dst, cleaned) {
		return false
	}
	*dst = cleaned
	return true
}

func listEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
