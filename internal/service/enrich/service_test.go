package enrich

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/provider"
	"github.com/vocabguru/backend/internal/quality"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockWordRepo struct {
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetByWordFunc              func(ctx context.Context, text string) (*domain.Word, error)
	UpdateFunc                 func(ctx context.Context, w *domain.Word) error
	ListOldestBelowQualityFunc func(ctx context.Context, threshold, limit int) ([]domain.Word, error)
	DeleteBelowQualityFunc     func(ctx context.Context, threshold int) (int64, error)
}

func (m *mockWordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockWordRepo) GetByWord(ctx context.Context, text string) (*domain.Word, error) {
	return m.GetByWordFunc(ctx, text)
}

func (m *mockWordRepo) Update(ctx context.Context, w *domain.Word) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, w)
	}
	return nil
}

func (m *mockWordRepo) ListOldestBelowQuality(ctx context.Context, threshold, limit int) ([]domain.Word, error) {
	return m.ListOldestBelowQualityFunc(ctx, threshold, limit)
}

func (m *mockWordRepo) DeleteBelowQuality(ctx context.Context, threshold int) (int64, error) {
	return m.DeleteBelowQualityFunc(ctx, threshold)
}

type mockAIEnricher struct {
	EnrichFunc func(ctx context.Context, w *domain.Word, categories []string) (*provider.AIEnrichment, error)
}

func (m *mockAIEnricher) Enrich(ctx context.Context, w *domain.Word, categories []string) (*provider.AIEnrichment, error) {
	return m.EnrichFunc(ctx, w, categories)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(repo *mockWordRepo, ai *mockAIEnricher) *Service {
	var enricher aiEnricher
	if ai != nil {
		enricher = ai
	}
	s := NewService(slog.Default(), repo, enricher)
	s.sleep = func(time.Duration) {}
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func sparseWord(text string) *domain.Word {
	w := &domain.Word{
		ID:   uuid.New(),
		Word: text,
		Morphemes: domain.MorphemeBreakdown{
			Root: domain.Morpheme{Text: text, Meaning: domain.RootMeaningPlaceholder},
		},
		Defs: domain.Definitions{Primary: "a sparse definition"},
	}
	quality.Apply(w)
	return w
}

// ---------------------------------------------------------------------------
// Enrich
// ---------------------------------------------------------------------------

func TestService_Enrich_HeuristicsFillGaps(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	w := sparseWord("station")
	before := w.QualityScore

	res, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Latin", w.Etymology.LanguageOfOrigin)
	assert.Equal(t, "noun", w.Analysis.PartsOfSpeech)
	assert.Contains(t, res.Changes, ChangeAddedLanguageOrigin)
	assert.Contains(t, res.Changes, ChangeInferredPOS)
	assert.Equal(t, before, res.QualityBefore)
	assert.Greater(t, res.QualityAfter, res.QualityBefore)
}

func TestService_Enrich_CleansDirtyData(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	w := sparseWord("station")
	w.Defs.Primary = "  a place where  trains stop \x00"
	w.Analysis.Synonyms = []string{"depot", "depot", " stop "}
	quality.Apply(w)

	res, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, res.Changes, ChangeCleanedData)
	assert.Equal(t, "a place where trains stop", w.Defs.Primary)
	assert.Equal(t, []string{"depot", "stop"}, w.Analysis.Synonyms)
}

func TestService_Enrich_HeuristicsKeepExistingValues(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	w := sparseWord("station")
	w.Etymology.LanguageOfOrigin = "French"
	w.Analysis.PartsOfSpeech = "verb"
	quality.Apply(w)

	res, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "French", w.Etymology.LanguageOfOrigin)
	assert.Equal(t, "verb", w.Analysis.PartsOfSpeech)
	assert.NotContains(t, res.Changes, ChangeAddedLanguageOrigin)
	assert.NotContains(t, res.Changes, ChangeInferredPOS)
}

func TestService_Enrich_GeneratesSynonymsFromForms(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	w := sparseWord("abundant")
	w.Forms.Noun = "abundance"
	w.Forms.Adverb = "abundantly"
	quality.Apply(w)

	res, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, res.Changes, ChangeGeneratedSynonyms)
	assert.Equal(t, []string{"abundance", "abundantly"}, w.Analysis.Synonyms)
}

func TestService_Enrich_AIFillsRemainingGaps(t *testing.T) {
	t.Parallel()

	var requested []string
	ai := &mockAIEnricher{
		EnrichFunc: func(_ context.Context, _ *domain.Word, categories []string) (*provider.AIEnrichment, error) {
			requested = categories
			return &provider.AIEnrichment{
				Morphemes: &domain.MorphemeBreakdown{
					Root: domain.Morpheme{Text: "sta", Meaning: "to stand"},
				},
				Defs: &domain.Definitions{
					Primary:  "a place where vehicles stop",
					Standard: []string{"a stopping place", "a broadcasting channel"},
				},
				Analysis: &domain.Analysis{
					Synonyms:      []string{"depot", "terminal"},
					UsageExamples: []string{"The train left the station."},
				},
			}, nil
		},
	}
	s := newTestService(&mockWordRepo{}, ai)

	// Root cleared so the record stays below the AI threshold even after
	// the heuristic tier fills origin and part of speech.
	w := sparseWord("station")
	w.Morphemes.Root = domain.Morpheme{}
	w.Etymology.HistoricalOrigins = "From Latin statio, a standing still."
	quality.Apply(w)

	res, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err)

	// AI is asked only for the gaps left after the heuristic tier.
	assert.Contains(t, requested, provider.CategoryMorphemes)
	assert.Contains(t, requested, provider.CategoryAnalysis)
	assert.NotContains(t, requested, provider.CategoryEtymology, "etymology already complete")

	assert.Equal(t, "sta", w.Morphemes.Root.Text)
	assert.Equal(t, "to stand", w.Morphemes.Root.Meaning)
	assert.Equal(t, "a place where vehicles stop", w.Defs.Primary,
		"generated values win inside a requested section")
	assert.Len(t, w.Defs.Standard, 2)
	assert.Contains(t, res.Changes, ChangeEnhancedMorphemes)
	assert.Contains(t, res.Changes, ChangeEnhancedDefinitions)
	assert.Contains(t, res.Changes, ChangeEnhancedAnalysis)
}

func TestService_Enrich_SkipsAIAboveThreshold(t *testing.T) {
	t.Parallel()

	ai := &mockAIEnricher{
		EnrichFunc: func(_ context.Context, _ *domain.Word, _ []string) (*provider.AIEnrichment, error) {
			t.Fatal("AI must not run for records at or above the threshold")
			return nil, nil
		},
	}
	s := newTestService(&mockWordRepo{}, ai)

	// A rich record: word, primary, origin, POS, root, synonyms, examples,
	// two standard defs, historical origins put it well above the threshold.
	w := sparseWord("station")
	w.Morphemes.Root = domain.Morpheme{Text: "sta", Meaning: "to stand"}
	w.Etymology.LanguageOfOrigin = "Latin"
	w.Etymology.HistoricalOrigins = "From Latin statio."
	w.Defs.Standard = []string{"a stopping place", "a broadcasting channel"}
	w.Analysis.PartsOfSpeech = "noun"
	w.Analysis.Synonyms = []string{"depot"}
	w.Analysis.UsageExamples = []string{"The train left the station."}
	quality.Apply(w)
	require.GreaterOrEqual(t, w.QualityScore, quality.EnrichmentThreshold)

	_, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err)
}

func TestService_Enrich_CleanDataOnlyTouchesNothingElse(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	w := &domain.Word{ID: uuid.New(), Word: " Test "}
	quality.Apply(w)

	res, err := s.Enrich(context.Background(), w, Options{CleanData: true})
	require.NoError(t, err)

	assert.Equal(t, "test", w.Word)
	assert.Equal(t, []string{ChangeCleanedData}, res.Changes)
	assert.Empty(t, w.Etymology.LanguageOfOrigin)
	assert.Empty(t, w.Analysis.PartsOfSpeech)
}

func TestService_Enrich_OptionsGateAICategories(t *testing.T) {
	t.Parallel()

	var requested []string
	ai := &mockAIEnricher{
		EnrichFunc: func(_ context.Context, _ *domain.Word, categories []string) (*provider.AIEnrichment, error) {
			requested = categories
			return &provider.AIEnrichment{
				Etymology: &domain.Etymology{HistoricalOrigins: "From Latin statio."},
			}, nil
		},
	}
	s := newTestService(&mockWordRepo{}, ai)

	w := sparseWord("station")
	opts := Options{ImproveEtymology: true}

	res, err := s.Enrich(context.Background(), w, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{provider.CategoryEtymology}, requested,
		"only the enabled category may be requested")
	assert.Contains(t, res.Changes, ChangeEnhancedEtymology)
	assert.Empty(t, w.Analysis.PartsOfSpeech, "disabled heuristics must not run")
}

func TestService_Enrich_AIFailureKeepsHeuristicTier(t *testing.T) {
	t.Parallel()

	boom := errors.New("rate limited")
	ai := &mockAIEnricher{
		EnrichFunc: func(_ context.Context, _ *domain.Word, _ []string) (*provider.AIEnrichment, error) {
			return nil, boom
		},
	}
	s := newTestService(&mockWordRepo{}, ai)

	w := sparseWord("station")
	res, err := s.Enrich(context.Background(), w, DefaultOptions())
	require.NoError(t, err, "an unreachable AI tier must not fail the pass")

	assert.ErrorIs(t, res.AIError, boom)
	assert.Contains(t, res.Changes, ChangeAddedLanguageOrigin)
	assert.Contains(t, res.Changes, ChangeInferredPOS)
	assert.Equal(t, "Latin", w.Etymology.LanguageOfOrigin)
	assert.Greater(t, res.QualityAfter, res.QualityBefore)
}

func TestService_EnrichWord_PersistsDespiteAIFailure(t *testing.T) {
	t.Parallel()

	stored := sparseWord("station")
	var updated *domain.Word
	repo := &mockWordRepo{
		GetByWordFunc: func(_ context.Context, _ string) (*domain.Word, error) {
			return stored, nil
		},
		UpdateFunc: func(_ context.Context, w *domain.Word) error {
			updated = w
			return nil
		},
	}
	ai := &mockAIEnricher{
		EnrichFunc: func(_ context.Context, _ *domain.Word, _ []string) (*provider.AIEnrichment, error) {
			return nil, errors.New("provider unreachable")
		},
	}
	s := newTestService(repo, ai)

	res, err := s.EnrichWord(context.Background(), "station", DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, updated, "heuristic changes must still be saved")
	assert.NotEmpty(t, res.Changes)
	assert.Equal(t, "Latin", updated.Etymology.LanguageOfOrigin)
}

// ---------------------------------------------------------------------------
// EnrichWord
// ---------------------------------------------------------------------------

func TestService_EnrichWord_PersistsChanges(t *testing.T) {
	t.Parallel()

	stored := sparseWord("station")
	var updated *domain.Word
	repo := &mockWordRepo{
		GetByWordFunc: func(_ context.Context, text string) (*domain.Word, error) {
			assert.Equal(t, "station", text)
			return stored, nil
		},
		UpdateFunc: func(_ context.Context, w *domain.Word) error {
			updated = w
			return nil
		},
	}
	s := newTestService(repo, nil)

	res, err := s.EnrichWord(context.Background(), " Station ", DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.NotEmpty(t, res.Changes)
	assert.Equal(t, "Latin", updated.Etymology.LanguageOfOrigin)
}

func TestService_EnrichWord_NoChange(t *testing.T) {
	t.Parallel()

	// Already enriched: heuristics and cleaning find nothing to do.
	stored := sparseWord("station")
	stored.Etymology.LanguageOfOrigin = "Latin"
	stored.Analysis.PartsOfSpeech = "noun"
	stored.Analysis.Synonyms = []string{"depot"}
	quality.Apply(stored)

	repo := &mockWordRepo{
		GetByWordFunc: func(_ context.Context, _ string) (*domain.Word, error) {
			return stored, nil
		},
		UpdateFunc: func(_ context.Context, _ *domain.Word) error {
			t.Fatal("no-op enrichment must not write")
			return nil
		},
	}
	s := newTestService(repo, nil)

	_, err := s.EnrichWord(context.Background(), "station", DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrEnrichmentNoChange)
}

func TestService_EnrichWordByID(t *testing.T) {
	t.Parallel()

	stored := sparseWord("station")
	var updated *domain.Word
	repo := &mockWordRepo{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Word, error) {
			assert.Equal(t, stored.ID, id)
			return stored, nil
		},
		UpdateFunc: func(_ context.Context, w *domain.Word) error {
			updated = w
			return nil
		},
	}
	s := newTestService(repo, nil)

	res, err := s.EnrichWordByID(context.Background(), stored.ID, DefaultOptions())
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.NotEmpty(t, res.Changes)

	_, err = s.EnrichWordByID(context.Background(), uuid.Nil, DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// EnrichBatch
// ---------------------------------------------------------------------------

func TestService_EnrichBatch_IsolatesFailures(t *testing.T) {
	t.Parallel()

	updates := 0
	repo := &mockWordRepo{
		UpdateFunc: func(_ context.Context, w *domain.Word) error {
			if w.Word == "broken" {
				return errors.New("write failed")
			}
			updates++
			return nil
		},
	}
	s := newTestService(repo, nil)

	words := []domain.Word{*sparseWord("station"), *sparseWord("broken"), *sparseWord("harbor")}

	res, err := s.EnrichBatch(context.Background(), words, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Successful)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, updates)
}

func TestService_EnrichBatch_RecordsPerItemResults(t *testing.T) {
	t.Parallel()

	repo := &mockWordRepo{
		UpdateFunc: func(_ context.Context, w *domain.Word) error {
			if w.Word == "broken" {
				return errors.New("write failed")
			}
			return nil
		},
	}
	s := newTestService(repo, nil)

	words := []domain.Word{*sparseWord("station"), *sparseWord("broken"), *sparseWord("harbor")}

	res, err := s.EnrichBatch(context.Background(), words, DefaultOptions(), nil)
	require.NoError(t, err)
	require.Len(t, res.Items, 3, "one slot per input word")

	assert.Equal(t, "station", res.Items[0].Word)
	assert.True(t, res.Items[0].Success)
	assert.NotEmpty(t, res.Items[0].Changes)
	assert.Greater(t, res.Items[0].QualityAfter, res.Items[0].QualityBefore)

	assert.Equal(t, "broken", res.Items[1].Word)
	assert.False(t, res.Items[1].Success)
	assert.Error(t, res.Items[1].Err)

	assert.Equal(t, "harbor", res.Items[2].Word)
	assert.True(t, res.Items[2].Success, "a failed item must not disturb its siblings")
	assert.NoError(t, res.Items[2].Err)
	assert.Equal(t, words[2].ID, res.Items[2].ID)
}

func TestService_EnrichBatch_ReportsProgress(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	var seen []Progress
	words := []domain.Word{*sparseWord("station"), *sparseWord("harbor")}

	res, err := s.EnrichBatch(context.Background(), words, DefaultOptions(), func(p Progress) {
		seen = append(seen, p)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Successful)

	require.Len(t, seen, 3, "one callback per word plus the final summary")
	assert.Equal(t, Progress{Total: 2, Processed: 0, CurrentWord: "station"}, seen[0])
	assert.Equal(t, "harbor", seen[1].CurrentWord)
	assert.Equal(t, Progress{Total: 2, Processed: 2, Successful: 2}, seen[2])
}

func TestService_EnrichBatch_PacesBetweenWords(t *testing.T) {
	t.Parallel()

	repo := &mockWordRepo{}
	s := newTestService(repo, nil)

	var slept int
	s.sleep = func(d time.Duration) {
		assert.Equal(t, defaultBatchDelay, d)
		slept++
	}

	words := []domain.Word{*sparseWord("a"), *sparseWord("b"), *sparseWord("c")}
	_, err := s.EnrichBatch(context.Background(), words, DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, slept, "no pause after the final word")
}

func TestService_EnrichBatch_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s := newTestService(&mockWordRepo{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	words := []domain.Word{*sparseWord("station")}
	res, err := s.EnrichBatch(ctx, words, DefaultOptions(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, res.Successful)
}

// ---------------------------------------------------------------------------
// AutoEnrich / Cleanup
// ---------------------------------------------------------------------------

func TestService_AutoEnrich_UsesThresholdQueue(t *testing.T) {
	t.Parallel()

	repo := &mockWordRepo{
		ListOldestBelowQualityFunc: func(_ context.Context, threshold, limit int) ([]domain.Word, error) {
			assert.Equal(t, quality.EnrichmentThreshold, threshold)
			assert.Equal(t, 25, limit)
			return []domain.Word{*sparseWord("station")}, nil
		},
	}
	s := newTestService(repo, nil)

	res, err := s.AutoEnrich(context.Background(), 25, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Successful)
}

func TestService_AutoEnrich_EmptyQueue(t *testing.T) {
	t.Parallel()

	repo := &mockWordRepo{
		ListOldestBelowQualityFunc: func(_ context.Context, _, _ int) ([]domain.Word, error) {
			return nil, nil
		},
	}
	s := newTestService(repo, nil)

	res, err := s.AutoEnrich(context.Background(), 25, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestService_Cleanup(t *testing.T) {
	t.Parallel()

	repo := &mockWordRepo{
		DeleteBelowQualityFunc: func(_ context.Context, threshold int) (int64, error) {
			assert.Equal(t, quality.CleanupThreshold, threshold)
			return 4, nil
		},
	}
	s := newTestService(repo, nil)

	deleted, err := s.Cleanup(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, deleted)
}
