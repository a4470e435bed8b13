// Package words implements retrieval, listing, and resolve-or-fetch for
// canonical word records. Resolution is the dedup boundary: every path that
// can introduce a record funnels through it.
package words

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	wordrepo "github.com/vocabguru/backend/internal/adapter/postgres/word"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/provider"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type wordRepo interface {
	Create(ctx context.Context, w *domain.Word) error
	Update(ctx context.Context, w *domain.Word) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetByWord(ctx context.Context, text string) (*domain.Word, error)
	Find(ctx context.Context, f wordrepo.Filter) ([]domain.Word, error)
}

type wordCache interface {
	GetWordByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetWordByText(ctx context.Context, text string) (*domain.Word, error)
	SetWord(ctx context.Context, w *domain.Word) error
	InvalidateWord(ctx context.Context, w *domain.Word) error
	GetList(ctx context.Context, pageKey string) (*domain.WordPage, error)
	SetList(ctx context.Context, pageKey string, page *domain.WordPage) error
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type legacySource interface {
	Lookup(text string) *domain.Word
	Words() []domain.Word
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements word retrieval and resolution.
type Service struct {
	log    *slog.Logger
	repo   wordRepo
	cache  wordCache
	dict   dictionaryProvider
	legacy legacySource
	tx     txManager
	now    func() time.Time
}

// NewService creates a words service. cache may be nil to run uncached.
func NewService(
	logger *slog.Logger,
	repo wordRepo,
	cache wordCache,
	dict dictionaryProvider,
	legacy legacySource,
	tx txManager,
) *Service {
	return &Service{
		log:    logger.With("service", "words"),
		repo:   repo,
		cache:  cache,
		dict:   dict,
		legacy: legacy,
		tx:     tx,
		now:    time.Now,
	}
}

// GetWord returns a record by id. Returns (nil, nil) when the record does
// not exist, and degrades the same way when the store is unreachable so
// read paths stay available.
func (s *Service) GetWord(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetWordByID(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			s.log.WarnContext(ctx, "store unavailable, degrading get",
				slog.String("id", id.String()), slog.String("error", err.Error()))
			return nil, nil
		}
		return nil, fmt.Errorf("get word by id: %w", err)
	}

	s.cacheWord(ctx, w)
	return w, nil
}

// GetWordByText returns a record by its normalized text, with the same
// degrade semantics as GetWord.
func (s *Service) GetWordByText(ctx context.Context, text string) (*domain.Word, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return nil, domain.NewValidationError("word", "required")
	}

	if s.cache != nil {
		if cached, err := s.cache.GetWordByText(ctx, normalized); err == nil && cached != nil {
			return cached, nil
		}
	}

	w, err := s.repo.GetByWord(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			s.log.WarnContext(ctx, "store unavailable, degrading get",
				slog.String("word", normalized), slog.String("error", err.Error()))
			return nil, nil
		}
		return nil, fmt.Errorf("get word by text: %w", err)
	}

	s.cacheWord(ctx, w)
	return w, nil
}

// ListQuery selects one page of the vocabulary.
type ListQuery struct {
	// Search matches case-insensitively against word text or primary
	// definition. Empty lists everything.
	Search   string
	Page     int
	PageSize int
}

func (q ListQuery) normalized() ListQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize <= 0 {
		q.PageSize = defaultPageSize
	}
	if q.PageSize > maxPageSize {
		q.PageSize = maxPageSize
	}
	return q
}

func (q ListQuery) cacheKey() string {
	return fmt.Sprintf("search=%s:page=%d:size=%d", q.Search, q.Page, q.PageSize)
}

// WordPage is one page of listing results. The final page reads one extra
// empty page; that is accepted in exchange for not running a count query.
type WordPage = domain.WordPage

// ListWords returns one page, newest records first. When the store is
// unreachable the page degrades to built-in records (first page, unfiltered
// queries) or to an empty page rather than failing.
func (s *Service) ListWords(ctx context.Context, q ListQuery) (*WordPage, error) {
	q = q.normalized()

	if s.cache != nil {
		if cached, err := s.cache.GetList(ctx, q.cacheKey()); err == nil && cached != nil {
			return cached, nil
		}
	}

	fetched, err := s.repo.Find(ctx, wordrepo.Filter{
		Search: q.Search,
		Limit:  q.PageSize,
		Offset: q.Page * q.PageSize,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, fmt.Errorf("list words: %w", err)
		}
		s.log.WarnContext(ctx, "store unavailable, degrading list",
			slog.String("error", err.Error()))
		fetched = nil
	}

	page := &WordPage{
		Words:   s.mergeBuiltin(q, fetched),
		HasMore: len(fetched) == q.PageSize,
	}

	if s.cache != nil && err == nil {
		if cacheErr := s.cache.SetList(ctx, q.cacheKey(), page); cacheErr != nil {
			s.log.WarnContext(ctx, "cache set failed", slog.String("error", cacheErr.Error()))
		}
	}

	return page, nil
}

// mergeBuiltin appends built-in records not already present by word text.
// Only the first unfiltered page is supplemented, so pagination stays stable.
func (s *Service) mergeBuiltin(q ListQuery, fetched []domain.Word) []domain.Word {
	words := fetched
	if words == nil {
		words = []domain.Word{}
	}
	if s.legacy == nil || q.Page != 0 || q.Search != "" {
		return words
	}

	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w.Word] = struct{}{}
	}
	for _, lw := range s.legacy.Words() {
		if _, ok := seen[lw.Word]; !ok {
			words = append(words, lw)
		}
	}
	return words
}

func (s *Service) cacheWord(ctx context.Context, w *domain.Word) {
	if s.cache == nil || w == nil {
		return
	}
	if err := s.cache.SetWord(ctx, w); err != nil {
		s.log.WarnContext(ctx, "cache set failed",
			slog.String("word", w.Word), slog.String("error", err.Error()))
	}
}

func (s *Service) invalidateWord(ctx context.Context, w *domain.Word) {
	if s.cache == nil || w == nil {
		return
	}
	if err := s.cache.InvalidateWord(ctx, w); err != nil {
		s.log.WarnContext(ctx, "cache invalidate failed",
			slog.String("word", w.Word), slog.String("error", err.Error()))
	}
}
