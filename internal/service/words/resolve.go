package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/normalizer"
	"github.com/vocabguru/backend/internal/provider"
	"github.com/vocabguru/backend/internal/quality"
)

// ErrWordUnknown is returned by ResolveWord when no source, internal or
// external, knows the requested word.
var ErrWordUnknown = errors.New("word not found in any source")

// ResolveWord returns the canonical record for a word text, fetching and
// persisting it from external sources on a store miss. Concurrent resolves
// of the same word converge on a single record: the loser of the insert
// race merges its data into the winner.
func (s *Service) ResolveWord(ctx context.Context, text string) (*domain.Word, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	// 1. Existing record wins outright.
	existing, err := s.repo.GetByWord(ctx, normalized)
	if err == nil {
		s.cacheWord(ctx, existing)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve lookup: %w", err)
	}

	// 2. Assemble a candidate from sources. External calls happen outside
	// any transaction.
	candidate, err := s.buildCandidate(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, fmt.Errorf("resolve %q: %w", normalized, ErrWordUnknown)
	}

	// 3. Persist, converging with any concurrent insert of the same word.
	return s.persistCandidate(ctx, candidate)
}

// ResolveRecord folds a full raw record (import rows, database exports)
// into the store: new words are created, duplicates are merged into the
// existing record. Reports whether a new record was created.
func (s *Service) ResolveRecord(ctx context.Context, raw normalizer.RawWord) (*domain.Word, bool, error) {
	candidate, err := normalizer.Normalize(raw)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByWord(ctx, candidate.Word)
	if err == nil {
		if mergeWords(existing, candidate, s.now()) {
			if err := s.repo.Update(ctx, existing); err != nil {
				return nil, false, fmt.Errorf("update merged word: %w", err)
			}
			s.invalidateWord(ctx, existing)
		}
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("resolve record lookup: %w", err)
	}

	saved, err := s.persistCandidate(ctx, candidate)
	if err != nil {
		return nil, false, err
	}
	// persistCandidate may have merged into a concurrent winner instead of
	// creating; treat that as not-created when the ids differ.
	return saved, saved.ID == candidate.ID, nil
}

// buildCandidate gathers data for an unknown word from the built-in
// vocabulary and the dictionary provider. Returns nil when no source has
// the word. A provider failure degrades to the built-in record when one
// exists, and propagates otherwise.
func (s *Service) buildCandidate(ctx context.Context, normalized string) (*domain.Word, error) {
	var candidate *domain.Word
	if s.legacy != nil {
		if lw := s.legacy.Lookup(normalized); lw != nil {
			cp := *lw
			candidate = &cp
		}
	}

	dictResult, err := s.dict.FetchEntry(ctx, normalized)
	if err != nil {
		if candidate == nil {
			s.log.ErrorContext(ctx, "dictionary provider error",
				slog.String("word", normalized), slog.String("error", err.Error()))
			return nil, fmt.Errorf("fetch entry: %w", err)
		}
		s.log.WarnContext(ctx, "dictionary provider error, using built-in record",
			slog.String("word", normalized), slog.String("error", err.Error()))
		dictResult = nil
	}

	if dictResult != nil && len(dictResult.Meanings) > 0 {
		fetched, err := fromDictionary(normalized, dictResult)
		if err != nil {
			return nil, fmt.Errorf("map dictionary result: %w", err)
		}
		if candidate == nil {
			candidate = fetched
		} else {
			mergeWords(candidate, fetched, s.now())
		}
	}
	return candidate, nil
}

// persistCandidate inserts a candidate, falling back to merge-into-winner
// when a concurrent resolve already inserted the same word.
func (s *Service) persistCandidate(ctx context.Context, candidate *domain.Word) (*domain.Word, error) {
	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	now := s.now()
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = now
	}
	candidate.UpdatedAt = now
	quality.Apply(candidate)

	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, candidate)
	})
	if txErr == nil {
		s.log.InfoContext(ctx, "word resolved and saved",
			slog.String("word", candidate.Word),
			slog.String("id", candidate.ID.String()),
			slog.Int("quality", candidate.QualityScore),
		)
		s.cacheWord(ctx, candidate)
		return candidate, nil
	}

	if !errors.Is(txErr, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("create word: %w", txErr)
	}

	// Lost the insert race: merge our data into the winner.
	winner, err := s.repo.GetByWord(ctx, candidate.Word)
	if err != nil {
		return nil, fmt.Errorf("get word after conflict: %w", err)
	}
	if mergeWords(winner, candidate, s.now()) {
		if err := s.repo.Update(ctx, winner); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Winner vanished between read and write. Give up on the
				// merge rather than loop; the caller still gets a record.
				return nil, fmt.Errorf("merge after conflict: %w", domain.ErrConflict)
			}
			return nil, fmt.Errorf("update word after conflict: %w", err)
		}
		s.invalidateWord(ctx, winner)
	}
	s.log.InfoContext(ctx, "concurrent resolve converged",
		slog.String("word", winner.Word),
		slog.String("id", winner.ID.String()),
	)
	s.cacheWord(ctx, winner)
	return winner, nil
}

// fromDictionary maps a dictionary provider result into a canonical record
// via the normalizer.
func fromDictionary(normalized string, res *provider.DictionaryResult) (*domain.Word, error) {
	raw := normalizer.RawWord{
		Word:       normalized,
		SourceApis: []string{domain.SourceDictionary},
	}

	raw.Etymology.HistoricalOrigins = res.Origin

	var standard []string
	var synonyms, antonyms, examples []string
	for mi, meaning := range res.Meanings {
		if raw.Analysis.PartsOfSpeech == "" {
			raw.Analysis.PartsOfSpeech = meaning.PartOfSpeech
		}
		for di, def := range meaning.Definitions {
			if def.Definition == "" {
				continue
			}
			if mi == 0 && di == 0 {
				raw.Definitions.Primary = def.Definition
			} else {
				standard = append(standard, def.Definition)
			}
			if def.Example != "" {
				examples = append(examples, def.Example)
			}
			synonyms = append(synonyms, def.Synonyms...)
			antonyms = append(antonyms, def.Antonyms...)
		}
	}
	raw.Definitions.Standard = standard
	raw.Analysis.Synonyms = synonyms
	raw.Analysis.Antonyms = antonyms
	raw.Analysis.UsageExamples = examples

	return normalizer.Normalize(raw)
}
