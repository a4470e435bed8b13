// Command import loads word records from a CSV or XLSX file. Every row is
// resolved through the same path as fetched words, so rows merge into
// existing records instead of duplicating them.
//
// Usage: import <file.csv|file.xlsx>
//
// Exit codes: 0 = all rows imported, 1 = error or failed rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/vocabguru/backend/internal/adapter/postgres"
	wordrepo "github.com/vocabguru/backend/internal/adapter/postgres/word"
	"github.com/vocabguru/backend/internal/adapter/provider/freedict"
	"github.com/vocabguru/backend/internal/app"
	"github.com/vocabguru/backend/internal/importer"
	"github.com/vocabguru/backend/internal/legacy"
	"github.com/vocabguru/backend/internal/service/words"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: import <file.csv|file.xlsx>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	deps, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer deps.Close()

	svc, err := buildWordsService(deps)
	if err != nil {
		deps.Log.Error("build words service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	imp := importer.New(deps.Log, svc)

	report, err := imp.ImportFile(ctx, path)
	if err != nil {
		deps.Log.Error("import failed",
			slog.String("file", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, rowErr := range report.Errors {
		deps.Log.Warn("row failed", slog.String("detail", rowErr))
	}
	deps.Log.Info("import completed",
		slog.String("file", path),
		slog.Int("processed", report.Processed),
		slog.Int("created", report.Created),
		slog.Int("merged", report.Merged),
		slog.Int("failed", report.Failed),
	)
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func buildWordsService(deps *app.Deps) (*words.Service, error) {
	repo := wordrepo.NewRepository(deps.Pool)
	tx := postgres.NewTxManager(deps.Pool)

	legacySrc, err := legacy.NewSource()
	if err != nil {
		return nil, fmt.Errorf("load builtin words: %w", err)
	}

	dict := freedict.NewProvider(deps.Log)
	if deps.Cfg.Dictionary.BaseURL != "" {
		dict = freedict.NewProviderWithURL(deps.Cfg.Dictionary.BaseURL, deps.Log)
	}

	if deps.Cache != nil {
		return words.NewService(deps.Log, repo, deps.Cache, dict, legacySrc, tx), nil
	}
	return words.NewService(deps.Log, repo, nil, dict, legacySrc, tx), nil
}
