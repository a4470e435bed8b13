// Package enrich implements the two-tier enrichment pipeline: free
// heuristic inference first, then AI generation for whatever the
// heuristics cannot fill. Batch runs are sequential and rate-limited.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/provider"
	"github.com/vocabguru/backend/internal/quality"
)

// Change tags recorded per enrichment pass.
const (
	ChangeCleanedData         = "cleaned_data"
	ChangeAddedLanguageOrigin = "added_language_origin"
	ChangeInferredPOS         = "inferred_part_of_speech"
	ChangeGeneratedSynonyms   = "generated_synonyms"
	ChangeEnhancedMorphemes   = "enhanced_morphemes"
	ChangeEnhancedEtymology   = "enhanced_etymology"
	ChangeEnhancedDefinitions = "enhanced_definitions"
	ChangeEnhancedAnalysis    = "enhanced_analysis"
	ChangeEnhancedWordForms   = "enhanced_word_forms"
)

// defaultBatchDelay paces sequential batch calls against provider limits.
const defaultBatchDelay = 500 * time.Millisecond

type wordRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetByWord(ctx context.Context, text string) (*domain.Word, error)
	Update(ctx context.Context, w *domain.Word) error
	ListOldestBelowQuality(ctx context.Context, threshold, limit int) ([]domain.Word, error)
	DeleteBelowQuality(ctx context.Context, threshold int) (int64, error)
}

type aiEnricher interface {
	Enrich(ctx context.Context, w *domain.Word, categories []string) (*provider.AIEnrichment, error)
}

// Service runs enrichment passes over word records.
type Service struct {
	log   *slog.Logger
	repo  wordRepo
	ai    aiEnricher
	delay time.Duration
	sleep func(time.Duration)
	now   func() time.Time
}

// Option tunes a Service.
type Option func(*Service)

// WithBatchDelay overrides the pause between words in a batch run.
func WithBatchDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// NewService creates an enrichment service. ai may be nil, in which case
// only the heuristic tier runs.
func NewService(logger *slog.Logger, repo wordRepo, ai aiEnricher, opts ...Option) *Service {
	s := &Service{
		log:   logger.With("service", "enrich"),
		repo:  repo,
		ai:    ai,
		delay: defaultBatchDelay,
		sleep: time.Sleep,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Options toggles which field categories an enrichment pass may modify.
// A zero Options is a no-op pass.
type Options struct {
	CleanData          bool
	FillMissingFields  bool
	EnhanceDefinitions bool
	ImproveEtymology   bool
	AddUsageExamples   bool
	GenerateSynonyms   bool
}

// DefaultOptions enables every category.
func DefaultOptions() Options {
	return Options{
		CleanData:          true,
		FillMissingFields:  true,
		EnhanceDefinitions: true,
		ImproveEtymology:   true,
		AddUsageExamples:   true,
		GenerateSynonyms:   true,
	}
}

// aiCategories maps the enabled options to enrichment request categories.
func (o Options) aiCategories() map[string]bool {
	return map[string]bool{
		provider.CategoryMorphemes:   o.FillMissingFields,
		provider.CategoryEtymology:   o.ImproveEtymology,
		provider.CategoryDefinitions: o.EnhanceDefinitions,
		provider.CategoryAnalysis:    o.AddUsageExamples || o.GenerateSynonyms,
		provider.CategoryWordForms:   o.FillMissingFields,
	}
}

// Result describes one enrichment pass. AIError carries a failed AI tier;
// the pass itself still succeeds on the heuristic changes alone.
type Result struct {
	Word          *domain.Word
	Changes       []string
	QualityBefore int
	QualityAfter  int
	AIError       error
}

// Enrich runs both tiers over the record in place and rescores it. The
// record is not persisted; callers decide what to do with the result.
// The AI tier only runs for records still below the quality threshold
// after the heuristic tier, and only for the enabled categories that are
// still missing. An unreachable or misbehaving AI tier never fails the
// pass: the heuristic result stands and the failure is recorded on it.
func (s *Service) Enrich(ctx context.Context, w *domain.Word, opts Options) (*Result, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: word is required", domain.ErrValidation)
	}

	res := &Result{Word: w, QualityBefore: w.QualityScore}

	if opts.CleanData && cleanData(w) {
		res.Changes = append(res.Changes, ChangeCleanedData)
	}

	s.applyHeuristics(w, res, opts)
	quality.Apply(w)

	if s.ai != nil && w.QualityScore < quality.EnrichmentThreshold {
		if err := s.applyAI(ctx, w, res, opts); err != nil {
			res.AIError = err
			s.log.WarnContext(ctx, "ai tier failed, keeping heuristic results",
				slog.String("word", w.Word), slog.String("error", err.Error()))
		}
		quality.Apply(w)
	}

	if len(res.Changes) > 0 {
		w.Touch(s.now())
	}
	res.QualityAfter = w.QualityScore

	s.log.DebugContext(ctx, "enrichment pass",
		slog.String("word", w.Word),
		slog.Int("before", res.QualityBefore),
		slog.Int("after", res.QualityAfter),
		slog.Any("changes", res.Changes),
	)
	return res, nil
}

// EnrichWord enriches a stored record and persists it when anything
// changed. Returns domain.ErrEnrichmentNoChange when the pass produced
// nothing new.
func (s *Service) EnrichWord(ctx context.Context, text string, opts Options) (*Result, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	w, err := s.repo.GetByWord(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("get word for enrichment: %w", err)
	}
	return s.enrichAndPersist(ctx, w, opts)
}

// EnrichWordByID is EnrichWord keyed by record id.
func (s *Service) EnrichWordByID(ctx context.Context, id uuid.UUID, opts Options) (*Result, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", "required")
	}

	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get word for enrichment: %w", err)
	}
	return s.enrichAndPersist(ctx, w, opts)
}

func (s *Service) enrichAndPersist(ctx context.Context, w *domain.Word, opts Options) (*Result, error) {
	res, err := s.Enrich(ctx, w, opts)
	if err != nil {
		return nil, err
	}
	if len(res.Changes) == 0 {
		return res, fmt.Errorf("enrich %q: %w", w.Word, domain.ErrEnrichmentNoChange)
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("save enriched word: %w", err)
	}
	s.log.InfoContext(ctx, "word enriched",
		slog.String("word", w.Word),
		slog.Int("quality", w.QualityScore),
		slog.Any("changes", res.Changes),
	)
	return res, nil
}

// applyHeuristics fills surface-form inferences into empty fields.
func (s *Service) applyHeuristics(w *domain.Word, res *Result, opts Options) {
	if opts.FillMissingFields {
		if w.Etymology.LanguageOfOrigin == "" {
			w.Etymology.LanguageOfOrigin = inferLanguageOrigin(w.Word)
			res.Changes = append(res.Changes, ChangeAddedLanguageOrigin)
		}
		if w.Analysis.PartsOfSpeech == "" {
			w.Analysis.PartsOfSpeech = inferPartOfSpeech(w.Word)
			res.Changes = append(res.Changes, ChangeInferredPOS)
		}
	}
	if opts.GenerateSynonyms && len(w.Analysis.Synonyms) == 0 {
		if syns := relatedForms(w); len(syns) > 0 {
			w.Analysis.Synonyms = syns
			res.Changes = append(res.Changes, ChangeGeneratedSynonyms)
		}
	}
}

// relatedForms collects the word's inflections as weak synonym stand-ins.
func relatedForms(w *domain.Word) []string {
	var out []string
	for _, form := range []string{w.Forms.Noun, w.Forms.Verb, w.Forms.Adjective, w.Forms.Adverb} {
		if form != "" && form != w.Word {
			out = append(out, form)
		}
	}
	return out
}

// applyAI requests the enabled, still-missing sections and overlays the
// response. Within a requested section, generated values win over existing
// ones; fields the response omits are kept.
func (s *Service) applyAI(ctx context.Context, w *domain.Word, res *Result, opts Options) error {
	categories := missingCategories(w, opts)
	if len(categories) == 0 {
		return nil
	}

	enrichment, err := s.ai.Enrich(ctx, w, categories)
	if err != nil {
		return fmt.Errorf("ai enrichment for %q: %w", w.Word, err)
	}

	if enrichment.Morphemes != nil && overlayMorphemes(&w.Morphemes, *enrichment.Morphemes) {
		res.Changes = append(res.Changes, ChangeEnhancedMorphemes)
	}
	if enrichment.Etymology != nil && overlayEtymology(&w.Etymology, *enrichment.Etymology) {
		res.Changes = append(res.Changes, ChangeEnhancedEtymology)
	}
	if enrichment.Defs != nil && overlayDefinitions(&w.Defs, *enrichment.Defs) {
		res.Changes = append(res.Changes, ChangeEnhancedDefinitions)
	}
	if enrichment.Analysis != nil && overlayAnalysis(&w.Analysis, *enrichment.Analysis) {
		res.Changes = append(res.Changes, ChangeEnhancedAnalysis)
	}
	if enrichment.Forms != nil && overlayForms(&w.Forms, *enrichment.Forms) {
		res.Changes = append(res.Changes, ChangeEnhancedWordForms)
	}
	return nil
}

// missingCategories maps quality gaps to enrichment categories, filtered
// to the categories the options enable.
func missingCategories(w *domain.Word, opts Options) []string {
	enabled := opts.aiCategories()

	set := make(map[string]bool)
	for _, field := range quality.MissingFields(w) {
		switch field {
		case "primary_definition", "standard_definitions":
			set[provider.CategoryDefinitions] = true
		case "root_text", "root_meaning":
			set[provider.CategoryMorphemes] = true
		case "language_origin", "historical_origins":
			set[provider.CategoryEtymology] = true
		case "part_of_speech", "synonyms", "usage_examples":
			set[provider.CategoryAnalysis] = true
		}
	}
	if w.Forms.Noun == "" && w.Forms.Verb == "" && w.Forms.Adjective == "" && w.Forms.Adverb == "" {
		set[provider.CategoryWordForms] = true
	}

	var out []string
	for _, cat := range provider.AllCategories {
		if set[cat] && enabled[cat] {
			out = append(out, cat)
		}
	}
	return out
}
