// Package quality computes completeness and quality scores for canonical
// word records. Scoring is a pure function of the record's current field
// values: no I/O, no randomness.
package quality

import (
	"math"

	"github.com/vocabguru/backend/internal/domain"
)

// Point weights for the quality rubric. The per-field weights are fixed,
// but the four groups (55 essential + 25 morphemes + 25 enhanced + 10
// etymology) sum to 115, so the awarded total is capped at 100: a fully
// populated record reads exactly 100 and partial records keep their exact
// awarded arithmetic.
//
// The legacy data pipeline carried two divergent rubrics (word presence
// worth 10 in one place, 15 in another); these higher-weighted values are
// canonical and the only ones used anywhere in this codebase.
const (
	ptsWord             = 15 // essential: word text present
	ptsPrimaryDef       = 20 // essential: primary definition present
	ptsLanguageOrigin   = 10 // essential: language of origin present
	ptsPartOfSpeech     = 10 // essential: part of speech present
	ptsRootText         = 10 // morphemes: root text present
	ptsRootMeaning      = 8  // morphemes: root meaning present
	ptsAffix            = 7  // morphemes: prefix or suffix present
	ptsSynonyms         = 8  // enhanced: at least one synonym
	ptsUsageExamples    = 8  // enhanced: at least one usage example
	ptsStandardDefs     = 9  // enhanced: at least two standard definitions
	ptsHistoricalOrigin = 5  // etymology: historical origins present
	ptsWordEvolution    = 5  // etymology: word evolution present
)

// EnrichmentThreshold is the quality score below which a record is
// considered incomplete and eligible for enrichment.
const EnrichmentThreshold = 70

// CleanupThreshold is the default quality score below which the low-quality
// sweep removes a record.
const CleanupThreshold = 20

// Scores holds the two derived 0-100 measures of a record.
type Scores struct {
	Quality      int
	Completeness int
}

// Score computes the quality and completeness scores for w.
// Placeholder sentinels written by the normalizer do not count as content.
func Score(w *domain.Word) Scores {
	return Scores{
		Quality:      qualityScore(w),
		Completeness: completenessScore(w),
	}
}

// Apply recomputes both scores and stores them on w.
func Apply(w *domain.Word) {
	s := Score(w)
	w.QualityScore = s.Quality
	w.CompletenessScore = s.Completeness
}

func qualityScore(w *domain.Word) int {
	score := 0

	// Essential fields (55 pts).
	if w.Word != "" {
		score += ptsWord
	}
	if hasPrimaryDefinition(w) {
		score += ptsPrimaryDef
	}
	if w.Etymology.LanguageOfOrigin != "" {
		score += ptsLanguageOrigin
	}
	if w.Analysis.PartsOfSpeech != "" {
		score += ptsPartOfSpeech
	}

	// Morpheme breakdown (25 pts).
	if w.Morphemes.Root.Text != "" {
		score += ptsRootText
	}
	if hasRootMeaning(w) {
		score += ptsRootMeaning
	}
	if w.Morphemes.Prefix != nil || w.Morphemes.Suffix != nil {
		score += ptsAffix
	}

	// Enhanced content (25 pts).
	if len(w.Analysis.Synonyms) > 0 {
		score += ptsSynonyms
	}
	if len(w.Analysis.UsageExamples) > 0 {
		score += ptsUsageExamples
	}
	if len(w.Defs.Standard) >= 2 {
		score += ptsStandardDefs
	}

	// Etymology richness (10 pts).
	if w.Etymology.HistoricalOrigins != "" {
		score += ptsHistoricalOrigin
	}
	if w.Etymology.WordEvolution != "" {
		score += ptsWordEvolution
	}

	if score > 100 {
		score = 100
	}
	return score
}

// completenessChecklist is the fixed 10-item checklist behind the
// completeness score. Order matters only for readability.
var completenessChecklist = []struct {
	name string
	done func(*domain.Word) bool
}{
	{"word", func(w *domain.Word) bool { return w.Word != "" }},
	{"primary_definition", hasPrimaryDefinition},
	{"root_text", func(w *domain.Word) bool { return w.Morphemes.Root.Text != "" }},
	{"language_origin", func(w *domain.Word) bool { return w.Etymology.LanguageOfOrigin != "" }},
	{"part_of_speech", func(w *domain.Word) bool { return w.Analysis.PartsOfSpeech != "" }},
	{"standard_definitions", func(w *domain.Word) bool { return len(w.Defs.Standard) >= 1 }},
	{"synonyms", func(w *domain.Word) bool { return len(w.Analysis.Synonyms) >= 1 }},
	{"usage_examples", func(w *domain.Word) bool { return len(w.Analysis.UsageExamples) >= 1 }},
	{"root_meaning", hasRootMeaning},
	{"historical_origins", func(w *domain.Word) bool { return w.Etymology.HistoricalOrigins != "" }},
}

func completenessScore(w *domain.Word) int {
	completed := 0
	for _, item := range completenessChecklist {
		if item.done(w) {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(completenessChecklist))))
}

// MissingFields names the checklist items not yet satisfied, in checklist
// order. Used to drive targeted enrichment.
func MissingFields(w *domain.Word) []string {
	var missing []string
	for _, item := range completenessChecklist {
		if !item.done(w) {
			missing = append(missing, item.name)
		}
	}
	return missing
}

func hasPrimaryDefinition(w *domain.Word) bool {
	return w.Defs.Primary != "" && w.Defs.Primary != domain.NoDefinitionFallback
}

func hasRootMeaning(w *domain.Word) bool {
	m := w.Morphemes.Root.Meaning
	return m != "" && m != domain.RootMeaningPlaceholder
}
