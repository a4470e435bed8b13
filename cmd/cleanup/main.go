// Command cleanup deletes word records whose quality never rose above the
// cleanup threshold. It is intended to be invoked by an external cron job,
// not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	wordrepo "github.com/vocabguru/backend/internal/adapter/postgres/word"
	"github.com/vocabguru/backend/internal/app"
	"github.com/vocabguru/backend/internal/service/enrich"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deps, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer deps.Close()

	repo := wordrepo.NewRepository(deps.Pool)
	svc := enrich.NewService(deps.Log, repo, nil)

	deleted, err := svc.Cleanup(ctx)
	if err != nil {
		deps.Log.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deps.Log.Info("cleanup completed", slog.Int64("deleted", deleted))
}
