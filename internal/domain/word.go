package domain

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder values written by the normalizer when a field is unknown.
// They signal "needs enrichment" and are never counted as real content
// by the quality scorer.
const (
	RootMeaningPlaceholder = "Root meaning to be analyzed"
	NoDefinitionFallback   = "No definition available"
)

// Source tags accumulated in Word.SourceApis.
const (
	SourceLegacy     = "legacy"
	SourceDictionary = "free_dictionary"
	SourceAI         = "ai-discovery"
	SourceImport     = "user_import"
	SourceDatabase   = "database"
)

// Word is the canonical representation of a vocabulary entry. Every raw
// record, regardless of origin, passes through the normalizer before it
// becomes a Word; no other component handles non-canonical shapes.
type Word struct {
	ID        uuid.UUID         `json:"id"`
	Word      string            `json:"word"` // normalized lowercase text, the dedup key
	Morphemes MorphemeBreakdown `json:"morpheme_breakdown"`
	Etymology Etymology         `json:"etymology"`
	Defs      Definitions       `json:"definitions"`
	Forms     WordForms         `json:"word_forms"`
	Analysis  Analysis          `json:"analysis"`

	// SourceApis is the provenance set: union-accumulated, never lost on merge.
	SourceApis []string `json:"source_apis"`

	// QualityScore and CompletenessScore are derived (0-100) and recomputed
	// whenever any contributing field changes.
	QualityScore      int `json:"quality_score"`
	CompletenessScore int `json:"completeness_score"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Morpheme is one unit of a morpheme breakdown.
type Morpheme struct {
	Text    string `json:"text"`
	Meaning string `json:"meaning"`
	Origin  string `json:"origin,omitempty"`
}

// MorphemeBreakdown splits a word into prefix/root/suffix. Root is always
// present at the type level; the normalizer synthesizes a placeholder when
// the breakdown is unknown.
type MorphemeBreakdown struct {
	Prefix *Morpheme `json:"prefix,omitempty"`
	Root   Morpheme  `json:"root"`
	Suffix *Morpheme `json:"suffix,omitempty"`
}

// Etymology holds the word's origin story.
type Etymology struct {
	LanguageOfOrigin   string `json:"language_of_origin,omitempty"`
	HistoricalOrigins  string `json:"historical_origins,omitempty"`
	WordEvolution      string `json:"word_evolution,omitempty"`
	CulturalVariations string `json:"cultural_variations,omitempty"`
}

// Definitions groups definitions by register. Primary is singular and
// required for a record to be considered complete.
type Definitions struct {
	Primary     string   `json:"primary,omitempty"`
	Standard    []string `json:"standard,omitempty"`
	Extended    []string `json:"extended,omitempty"`
	Contextual  []string `json:"contextual,omitempty"`
	Specialized []string `json:"specialized,omitempty"`
}

// WordForms holds inflections of the base word.
type WordForms struct {
	Noun             string   `json:"noun,omitempty"`
	Verb             string   `json:"verb,omitempty"`
	Adjective        string   `json:"adjective,omitempty"`
	Adverb           string   `json:"adverb,omitempty"`
	OtherInflections []string `json:"other_inflections,omitempty"`
}

// Analysis holds usage-level information about the word.
type Analysis struct {
	PartsOfSpeech   string   `json:"parts_of_speech,omitempty"`
	Synonyms        []string `json:"synonyms,omitempty"`
	Antonyms        []string `json:"antonyms,omitempty"`
	Collocations    []string `json:"collocations,omitempty"`
	UsageExamples   []string `json:"usage_examples,omitempty"`
	ExampleSentence string   `json:"example_sentence,omitempty"`
}

// HasSource reports whether the given provenance tag is already recorded.
func (w *Word) HasSource(tag string) bool {
	for _, s := range w.SourceApis {
		if s == tag {
			return true
		}
	}
	return false
}

// AddSource records a provenance tag, keeping the set duplicate-free.
func (w *Word) AddSource(tag string) {
	if tag == "" || w.HasSource(tag) {
		return
	}
	w.SourceApis = append(w.SourceApis, tag)
}

// Touch bumps UpdatedAt. Called on every mutation.
// WordPage is one page of listing results. HasMore is a sentinel derived
// from store page fill: a full store page means another fetch is worthwhile.
// It travels with the page so cached copies keep the flag they were
// computed with even when the page itself was padded afterwards.
type WordPage struct {
	Words   []Word `json:"words"`
	HasMore bool   `json:"has_more"`
}

func (w *Word) Touch(now time.Time) {
	w.UpdatedAt = now
}
