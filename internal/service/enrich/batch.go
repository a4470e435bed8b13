package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/quality"
)

// Progress is the per-word callback payload during a batch run.
type Progress struct {
	Total       int
	Processed   int
	Successful  int
	Failed      int
	CurrentWord string
}

// ItemResult records the outcome for one word of a batch run.
type ItemResult struct {
	ID            uuid.UUID
	Word          string
	Success       bool
	Changes       []string
	QualityBefore int
	QualityAfter  int
	Err           error
}

// BatchResult summarizes a batch run. Items holds one slot per input word,
// in input order; a failed item never disturbs its siblings' slots.
// Unchanged words count as successful.
type BatchResult struct {
	Total      int
	Successful int
	Failed     int
	Items      []ItemResult
}

// EnrichBatch enriches records sequentially, persisting each changed record
// and pausing between words to respect provider rate limits. One word's
// failure never aborts the rest; only context cancellation stops the run.
// progress may be nil.
func (s *Service) EnrichBatch(ctx context.Context, words []domain.Word, opts Options, progress func(Progress)) (*BatchResult, error) {
	res := &BatchResult{Total: len(words)}

	for i := range words {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("batch enrichment interrupted: %w", err)
		}

		w := &words[i]
		if progress != nil {
			progress(Progress{
				Total:       res.Total,
				Processed:   i,
				Successful:  res.Successful,
				Failed:      res.Failed,
				CurrentWord: w.Word,
			})
		}

		item := ItemResult{ID: w.ID, Word: w.Word}
		if r, err := s.enrichAndSave(ctx, w, opts); err != nil {
			item.Err = err
			res.Failed++
			s.log.WarnContext(ctx, "batch enrichment failed for word",
				slog.String("word", w.Word), slog.String("error", err.Error()))
		} else {
			item.Success = true
			item.Changes = r.Changes
			item.QualityBefore = r.QualityBefore
			item.QualityAfter = r.QualityAfter
			res.Successful++
		}
		res.Items = append(res.Items, item)

		if i < len(words)-1 && s.delay > 0 {
			s.sleep(s.delay)
		}
	}

	if progress != nil {
		progress(Progress{
			Total:      res.Total,
			Processed:  res.Total,
			Successful: res.Successful,
			Failed:     res.Failed,
		})
	}

	s.log.InfoContext(ctx, "batch enrichment finished",
		slog.Int("total", res.Total),
		slog.Int("successful", res.Successful),
		slog.Int("failed", res.Failed),
	)
	return res, nil
}

func (s *Service) enrichAndSave(ctx context.Context, w *domain.Word, opts Options) (*Result, error) {
	res, err := s.Enrich(ctx, w, opts)
	if err != nil {
		return nil, err
	}
	if len(res.Changes) == 0 {
		return res, nil
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return nil, fmt.Errorf("save enriched word: %w", err)
	}
	return res, nil
}

// WordsNeedingEnrichment returns up to limit records below the enrichment
// quality threshold, least recently updated first.
func (s *Service) WordsNeedingEnrichment(ctx context.Context, limit int) ([]domain.Word, error) {
	words, err := s.repo.ListOldestBelowQuality(ctx, quality.EnrichmentThreshold, limit)
	if err != nil {
		return nil, fmt.Errorf("list words needing enrichment: %w", err)
	}
	return words, nil
}

// AutoEnrich runs one full-options batch over the words currently below
// the enrichment threshold. Returns an empty result when nothing needs work.
func (s *Service) AutoEnrich(ctx context.Context, limit int, progress func(Progress)) (*BatchResult, error) {
	words, err := s.WordsNeedingEnrichment(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return &BatchResult{}, nil
	}
	return s.EnrichBatch(ctx, words, DefaultOptions(), progress)
}

// Cleanup deletes records scoring below the cleanup threshold. These are
// records so sparse that re-fetching them from scratch beats enriching.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteBelowQuality(ctx, quality.CleanupThreshold)
	if err != nil {
		return 0, fmt.Errorf("cleanup sweep: %w", err)
	}
	if deleted > 0 {
		s.log.InfoContext(ctx, "cleanup sweep removed words", slog.Int64("deleted", deleted))
	}
	return deleted, nil
}
