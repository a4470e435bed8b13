package words

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/quality"
)

var mergeNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestMergeWords_ExistingWins(t *testing.T) {
	dst := makeWord("abundant")
	dst.Defs.Primary = "the established definition"
	dst.Etymology.LanguageOfOrigin = "Latin"
	quality.Apply(dst)

	src := makeWord("abundant")
	src.Defs.Primary = "a competing definition"
	src.Etymology.LanguageOfOrigin = "Greek"

	mergeWords(dst, src, mergeNow)

	assert.Equal(t, "the established definition", dst.Defs.Primary)
	assert.Equal(t, "Latin", dst.Etymology.LanguageOfOrigin)
}

func TestMergeWords_FillsEmptyFields(t *testing.T) {
	dst := makeWord("abundant")
	dst.Etymology.LanguageOfOrigin = ""
	dst.Forms.Adverb = ""

	src := makeWord("abundant")
	src.Etymology.LanguageOfOrigin = "Latin"
	src.Forms.Adverb = "abundantly"

	changed := mergeWords(dst, src, mergeNow)

	assert.True(t, changed)
	assert.Equal(t, "Latin", dst.Etymology.LanguageOfOrigin)
	assert.Equal(t, "abundantly", dst.Forms.Adverb)
	assert.Equal(t, mergeNow, dst.UpdatedAt)
}

func TestMergeWords_PlaceholderPrimaryIsReplaceable(t *testing.T) {
	dst := makeWord("abundant")
	dst.Defs.Primary = domain.NoDefinitionFallback

	src := makeWord("abundant")
	src.Defs.Primary = "a real definition"

	mergeWords(dst, src, mergeNow)

	assert.Equal(t, "a real definition", dst.Defs.Primary)
}

func TestMergeWords_PlaceholderRootIsReplaceable(t *testing.T) {
	dst := makeWord("abundant") // root meaning is the placeholder

	src := makeWord("abundant")
	src.Morphemes.Root = domain.Morpheme{Text: "und", Meaning: "wave, flow"}

	mergeWords(dst, src, mergeNow)

	assert.Equal(t, "wave, flow", dst.Morphemes.Root.Meaning)
}

func TestMergeWords_RealRootIsKept(t *testing.T) {
	dst := makeWord("abundant")
	dst.Morphemes.Root = domain.Morpheme{Text: "und", Meaning: "wave, flow"}

	src := makeWord("abundant")
	src.Morphemes.Root = domain.Morpheme{Text: "abund", Meaning: "overflow"}

	mergeWords(dst, src, mergeNow)

	assert.Equal(t, "wave, flow", dst.Morphemes.Root.Meaning)
}

func TestMergeWords_UnionsListsPreservingOrder(t *testing.T) {
	dst := makeWord("abundant")
	dst.Analysis.Synonyms = []string{"plentiful", "copious"}

	src := makeWord("abundant")
	src.Analysis.Synonyms = []string{"copious", "ample"}

	mergeWords(dst, src, mergeNow)

	assert.Equal(t, []string{"plentiful", "copious", "ample"}, dst.Analysis.Synonyms)
}

func TestMergeWords_UnionsProvenance(t *testing.T) {
	dst := makeWord("abundant")
	require.Equal(t, []string{domain.SourceDatabase}, dst.SourceApis)

	src := makeWord("abundant")
	src.SourceApis = []string{domain.SourceDictionary, domain.SourceDatabase}

	changed := mergeWords(dst, src, mergeNow)

	assert.True(t, changed)
	assert.Equal(t, []string{domain.SourceDatabase, domain.SourceDictionary}, dst.SourceApis)
}

func TestMergeWords_RescoresOnChange(t *testing.T) {
	dst := makeWord("abundant")
	dst.Etymology.LanguageOfOrigin = ""
	quality.Apply(dst)
	before := dst.QualityScore

	src := makeWord("abundant")
	src.Etymology.LanguageOfOrigin = "Latin"

	mergeWords(dst, src, mergeNow)

	assert.Equal(t, before+10, dst.QualityScore)
}

func TestMergeWords_NoChange(t *testing.T) {
	dst := makeWord("abundant")
	updatedAt := dst.UpdatedAt

	src := makeWord("abundant")
	src.ID = dst.ID
	src.Defs.Primary = dst.Defs.Primary

	changed := mergeWords(dst, src, mergeNow)

	assert.False(t, changed)
	assert.Equal(t, updatedAt, dst.UpdatedAt, "no-op merge must not touch timestamps")
}
