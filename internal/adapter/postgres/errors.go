package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vocabguru/backend/internal/domain"
)

// MapError converts pgx/pgconn errors into domain errors. The key names the
// record involved (a word or an id rendered as text) for error context.
// context.DeadlineExceeded and context.Canceled pass through unmapped.
func MapError(err error, entity, key string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %q: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %q: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation — the dedup index on words.word
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrValidation)
		}
		// Class 08 — connection exceptions. Read paths degrade on this.
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			return fmt.Errorf("%s %q: %w", entity, key, domain.ErrStoreUnavailable)
		}
	}

	return fmt.Errorf("%s %q: %w", entity, key, err)
}
