// Package provider defines the structured contracts returned by external
// data providers. Each provider's wire format is mapped into these tagged
// shapes at the adapter boundary; raw JSON blobs never travel deeper into
// the pipeline.
package provider

import "github.com/vocabguru/backend/internal/domain"

// DictionaryResult is the structured result from a dictionary API provider.
type DictionaryResult struct {
	Word     string
	Phonetic string
	Origin   string
	Meanings []Meaning
}

// Meaning groups definitions sharing a part of speech.
type Meaning struct {
	PartOfSpeech string
	Definitions  []Definition
}

// Definition is a single definition with optional usage data.
type Definition struct {
	Definition string
	Example    string
	Synonyms   []string
	Antonyms   []string
}

// Enrichment category names. They match the canonical record's top-level
// sections and key the AIEnrichment payload.
const (
	CategoryMorphemes   = "morpheme_breakdown"
	CategoryEtymology   = "etymology"
	CategoryDefinitions = "definitions"
	CategoryAnalysis    = "analysis"
	CategoryWordForms   = "word_forms"
)

// AllCategories lists every enrichable section.
var AllCategories = []string{
	CategoryMorphemes,
	CategoryEtymology,
	CategoryDefinitions,
	CategoryAnalysis,
	CategoryWordForms,
}

// AIEnrichment is the category-keyed payload returned by an AI enrichment
// provider. Nil categories were not produced; non-nil categories are
// shallow-merged on top of the existing record by the orchestrator.
type AIEnrichment struct {
	Morphemes *domain.MorphemeBreakdown `json:"morpheme_breakdown,omitempty"`
	Etymology *domain.Etymology         `json:"etymology,omitempty"`
	Defs      *domain.Definitions       `json:"definitions,omitempty"`
	Analysis  *domain.Analysis          `json:"analysis,omitempty"`
	Forms     *domain.WordForms         `json:"word_forms,omitempty"`
}

// Empty reports whether the payload carries no categories at all.
func (e *AIEnrichment) Empty() bool {
	return e == nil ||
		(e.Morphemes == nil && e.Etymology == nil && e.Defs == nil &&
			e.Analysis == nil && e.Forms == nil)
}
