// Package normalizer converts heterogeneous raw word records into the
// canonical domain.Word representation. It is the single translation
// boundary: no other component ever sees a non-canonical shape.
//
// Raw records arrive in two historical field-naming conventions (the
// snake_case database shape and the camelCase legacy shape) and may encode
// list-like fields as either a real array or a single delimited string.
package normalizer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vocabguru/backend/internal/domain"
)

// FlexStrings decodes either a JSON array of strings or a single
// comma-separated string ("a, b,c" → ["a","b","c"]).
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*f = out
	return nil
}

// FlexBlock decodes either a JSON array of strings or a single string kept
// whole as a one-element sequence. Used for contextual/specialized
// definitions, where commas are part of the prose.
type FlexBlock []string

func (f *FlexBlock) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s != "" {
		*f = []string{s}
	}
	return nil
}

// RawWord is the any-source input shape. Build it programmatically from an
// adapter, or decode it from JSON in either naming convention.
type RawWord struct {
	ID          string
	Word        string
	Morphemes   *RawMorphemes
	Etymology   RawEtymology
	Definitions RawDefinitions
	Forms       RawWordForms
	Analysis    RawAnalysis
	SourceApis  []string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

func (r *RawWord) UnmarshalJSON(b []byte) error {
	var wire struct {
		ID              string          `json:"id"`
		Word            string          `json:"word"`
		MorphemesSnake  *RawMorphemes   `json:"morpheme_breakdown"`
		MorphemesCamel  *RawMorphemes   `json:"morphemeBreakdown"`
		Etymology       RawEtymology    `json:"etymology"`
		Definitions     RawDefinitions  `json:"definitions"`
		FormsSnake      *RawWordForms   `json:"word_forms"`
		FormsCamel      *RawWordForms   `json:"wordForms"`
		Analysis        RawAnalysis     `json:"analysis"`
		SourceApisSnake []string        `json:"source_apis"`
		SourceApisCamel []string        `json:"sourceApis"`
		CreatedAtSnake  *time.Time      `json:"created_at"`
		CreatedAtCamel  *time.Time      `json:"createdAt"`
		UpdatedAtSnake  *time.Time      `json:"updated_at"`
		UpdatedAtCamel  *time.Time      `json:"updatedAt"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	r.ID = wire.ID
	r.Word = wire.Word
	r.Morphemes = firstMorphemes(wire.MorphemesSnake, wire.MorphemesCamel)
	r.Etymology = wire.Etymology
	r.Definitions = wire.Definitions
	if wire.FormsSnake != nil {
		r.Forms = *wire.FormsSnake
	} else if wire.FormsCamel != nil {
		r.Forms = *wire.FormsCamel
	}
	r.Analysis = wire.Analysis
	r.SourceApis = wire.SourceApisSnake
	if r.SourceApis == nil {
		r.SourceApis = wire.SourceApisCamel
	}
	r.CreatedAt = firstTime(wire.CreatedAtSnake, wire.CreatedAtCamel)
	r.UpdatedAt = firstTime(wire.UpdatedAtSnake, wire.UpdatedAtCamel)
	return nil
}

// RawMorphemes mirrors domain.MorphemeBreakdown with all parts optional.
type RawMorphemes struct {
	Prefix *domain.Morpheme `json:"prefix"`
	Root   *domain.Morpheme `json:"root"`
	Suffix *domain.Morpheme `json:"suffix"`
}

// RawEtymology accepts both naming conventions for each field.
type RawEtymology struct {
	LanguageOfOrigin   string
	HistoricalOrigins  string
	WordEvolution      string
	CulturalVariations string
}

func (r *RawEtymology) UnmarshalJSON(b []byte) error {
	var wire struct {
		LanguageSnake   string `json:"language_of_origin"`
		LanguageCamel   string `json:"languageOfOrigin"`
		HistoricalSnake string `json:"historical_origins"`
		HistoricalCamel string `json:"historicalOrigins"`
		EvolutionSnake  string `json:"word_evolution"`
		EvolutionCamel  string `json:"wordEvolution"`
		CulturalSnake   string `json:"cultural_variations"`
		CulturalCamel   string `json:"culturalVariations"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	r.LanguageOfOrigin = firstString(wire.LanguageSnake, wire.LanguageCamel)
	r.HistoricalOrigins = firstString(wire.HistoricalSnake, wire.HistoricalCamel)
	r.WordEvolution = firstString(wire.EvolutionSnake, wire.EvolutionCamel)
	r.CulturalVariations = firstString(wire.CulturalSnake, wire.CulturalCamel)
	return nil
}

// RawDefinitions accepts array-or-string list fields.
type RawDefinitions struct {
	Primary     string      `json:"primary"`
	Standard    FlexStrings `json:"standard"`
	Extended    FlexStrings `json:"extended"`
	Contextual  FlexBlock   `json:"contextual"`
	Specialized FlexBlock   `json:"specialized"`
}

// RawWordForms accepts the flat inflection shape.
type RawWordForms struct {
	Noun             string
	Verb             string
	Adjective        string
	Adverb           string
	OtherInflections FlexStrings
}

func (r *RawWordForms) UnmarshalJSON(b []byte) error {
	var wire struct {
		Noun        string      `json:"noun"`
		Verb        string      `json:"verb"`
		Adjective   string      `json:"adjective"`
		Adverb      string      `json:"adverb"`
		OtherSnake  FlexStrings `json:"other_inflections"`
		OtherCamel  FlexStrings `json:"otherInflections"`
		AdverbSnake string      `json:"adverb_form"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	r.Noun = wire.Noun
	r.Verb = wire.Verb
	r.Adjective = wire.Adjective
	r.Adverb = firstString(wire.Adverb, wire.AdverbSnake)
	r.OtherInflections = wire.OtherSnake
	if r.OtherInflections == nil {
		r.OtherInflections = wire.OtherCamel
	}
	return nil
}

// RawAnalysis accepts both conventions plus the historical
// "common_collocations" spelling.
type RawAnalysis struct {
	PartsOfSpeech   string
	Synonyms        FlexStrings
	Antonyms        FlexStrings
	Collocations    FlexStrings
	UsageExamples   FlexStrings
	ExampleSentence string
}

func (r *RawAnalysis) UnmarshalJSON(b []byte) error {
	var wire struct {
		POSSnake     string      `json:"parts_of_speech"`
		POSCamel     string      `json:"partsOfSpeech"`
		Synonyms     FlexStrings `json:"synonyms"`
		Antonyms     FlexStrings `json:"antonyms"`
		Colloc       FlexStrings `json:"collocations"`
		CollocCommon FlexStrings `json:"common_collocations"`
		CollocCamel  FlexStrings `json:"commonCollocations"`
		UsageSnake   FlexStrings `json:"usage_examples"`
		UsageCamel   FlexStrings `json:"usageExamples"`
		SentSnake    string      `json:"example_sentence"`
		SentCamel    string      `json:"exampleSentence"`
		SentShort    string      `json:"example"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	r.PartsOfSpeech = firstString(wire.POSSnake, wire.POSCamel)
	r.Synonyms = wire.Synonyms
	r.Antonyms = wire.Antonyms
	r.Collocations = wire.Colloc
	if r.Collocations == nil {
		r.Collocations = wire.CollocCommon
	}
	if r.Collocations == nil {
		r.Collocations = wire.CollocCamel
	}
	r.UsageExamples = wire.UsageSnake
	if r.UsageExamples == nil {
		r.UsageExamples = wire.UsageCamel
	}
	r.ExampleSentence = firstString(wire.SentSnake, wire.SentCamel, wire.SentShort)
	return nil
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstTime(vals ...*time.Time) *time.Time {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func firstMorphemes(vals ...*RawMorphemes) *RawMorphemes {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
