// Command seeder copies the built-in starter vocabulary into PostgreSQL.
// Records already present are left untouched. It is intended to be run
// once against a fresh database, and is safe to re-run.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	wordrepo "github.com/vocabguru/backend/internal/adapter/postgres/word"
	"github.com/vocabguru/backend/internal/app"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/legacy"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deps, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer deps.Close()

	src, err := legacy.NewSource()
	if err != nil {
		deps.Log.Error("load builtin words", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := wordrepo.NewRepository(deps.Pool)

	var created, skipped int
	for _, w := range src.Words() {
		if err := repo.Create(ctx, &w); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			deps.Log.Error("seed word",
				slog.String("word", w.Word), slog.String("error", err.Error()))
			os.Exit(1)
		}
		created++
		deps.Log.Debug("word seeded", slog.String("word", w.Word))
	}

	deps.Log.Info("seeding completed",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
	)
}
