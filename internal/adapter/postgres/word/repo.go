// Package word implements the PostgreSQL repository for canonical word
// records. Structured sub-documents (morphemes, etymology, definitions,
// word forms, analysis) live in jsonb columns; the word text carries a
// unique index that backs deduplication.
package word

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/vocabguru/backend/internal/adapter/postgres"
	"github.com/vocabguru/backend/internal/domain"
)

const table = "words"

var columns = []string{
	"id",
	"word",
	"morphemes",
	"etymology",
	"definitions",
	"word_forms",
	"analysis",
	"source_apis",
	"quality_score",
	"completeness_score",
	"created_at",
	"updated_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository persists domain.Word aggregates.
type Repository struct {
	db postgres.Querier
}

// NewRepository creates a word repository backed by the given querier
// (normally the connection pool).
func NewRepository(db postgres.Querier) *Repository {
	return &Repository{db: db}
}

// q resolves the querier for the call: the transaction carried in the
// context, if any, otherwise the pool.
func (r *Repository) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// Create inserts a new word record. A concurrent insert of the same word
// text surfaces as domain.ErrAlreadyExists via the unique index.
func (r *Repository) Create(ctx context.Context, w *domain.Word) error {
	if w == nil || strings.TrimSpace(w.Word) == "" {
		return fmt.Errorf("%w: word text is required", domain.ErrValidation)
	}

	query := psql.Insert(table).
		Columns(columns...).
		Values(
			w.ID, w.Word,
			w.Morphemes, w.Etymology, w.Defs, w.Forms, w.Analysis,
			w.SourceApis,
			w.QualityScore, w.CompletenessScore,
			w.CreatedAt, w.UpdatedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "word", w.Word)
	}
	return nil
}

// Update rewrites every mutable column of an existing record.
func (r *Repository) Update(ctx context.Context, w *domain.Word) error {
	if w == nil || w.ID == uuid.Nil {
		return fmt.Errorf("%w: word id is required", domain.ErrValidation)
	}

	query := psql.Update(table).
		Set("word", w.Word).
		Set("morphemes", w.Morphemes).
		Set("etymology", w.Etymology).
		Set("definitions", w.Defs).
		Set("word_forms", w.Forms).
		Set("analysis", w.Analysis).
		Set("source_apis", w.SourceApis).
		Set("quality_score", w.QualityScore).
		Set("completeness_score", w.CompletenessScore).
		Set("updated_at", w.UpdatedAt).
		Where(squirrel.Eq{"id": w.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "word", w.Word)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %q: %w", w.Word, domain.ErrNotFound)
	}
	return nil
}

// GetByID returns the record with the given id.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	return r.getOne(ctx, squirrel.Eq{"id": id}, id.String())
}

// GetByWord returns the record whose word text matches exactly. Callers
// are expected to pass already-normalized text.
func (r *Repository) GetByWord(ctx context.Context, text string) (*domain.Word, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: word text is required", domain.ErrValidation)
	}
	return r.getOne(ctx, squirrel.Eq{"word": text}, text)
}

func (r *Repository) getOne(ctx context.Context, pred any, key string) (*domain.Word, error) {
	query := psql.Select(columns...).From(table).Where(pred)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row wordRow
	if err := pgxscan.Get(ctx, r.q(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("word %q: %w", key, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "word", key)
	}
	return row.toDomain(), nil
}

// Find returns a page of records matching the filter, newest first.
func (r *Repository) Find(ctx context.Context, f Filter) ([]domain.Word, error) {
	f = f.normalized()

	query := f.apply(psql.Select(columns...).From(table))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "words", f.Search)
	}

	out := make([]domain.Word, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toDomain())
	}
	return out, nil
}

// ListOldestBelowQuality returns up to limit records whose quality score is
// below the threshold, least recently updated first. Enrichment sweeps work
// through this queue.
func (r *Repository) ListOldestBelowQuality(ctx context.Context, threshold, limit int) ([]domain.Word, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	query := psql.Select(columns...).From(table).
		Where(squirrel.Lt{"quality_score": threshold}).
		OrderBy("updated_at ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, r.q(ctx), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "words", "below-quality")
	}

	out := make([]domain.Word, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row.toDomain())
	}
	return out, nil
}

// DeleteBelowQuality removes every record scoring below the threshold and
// reports how many were deleted.
func (r *Repository) DeleteBelowQuality(ctx context.Context, threshold int) (int64, error) {
	query := psql.Delete(table).Where(squirrel.Lt{"quality_score": threshold})

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "words", "below-quality")
	}
	return tag.RowsAffected(), nil
}

// wordRow is the scan target. The jsonb columns decode straight into the
// domain sub-structs via pgx's JSON codec.
type wordRow struct {
	ID                uuid.UUID                `db:"id"`
	Word              string                   `db:"word"`
	Morphemes         domain.MorphemeBreakdown `db:"morphemes"`
	Etymology         domain.Etymology         `db:"etymology"`
	Definitions       domain.Definitions       `db:"definitions"`
	WordForms         domain.WordForms         `db:"word_forms"`
	Analysis          domain.Analysis          `db:"analysis"`
	SourceApis        []string                 `db:"source_apis"`
	QualityScore      int                      `db:"quality_score"`
	CompletenessScore int                      `db:"completeness_score"`
	CreatedAt         time.Time                `db:"created_at"`
	UpdatedAt         time.Time                `db:"updated_at"`
}

func (r wordRow) toDomain() *domain.Word {
	return &domain.Word{
		ID:                r.ID,
		Word:              r.Word,
		Morphemes:         r.Morphemes,
		Etymology:         r.Etymology,
		Defs:              r.Definitions,
		Forms:             r.WordForms,
		Analysis:          r.Analysis,
		SourceApis:        r.SourceApis,
		QualityScore:      r.QualityScore,
		CompletenessScore: r.CompletenessScore,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
