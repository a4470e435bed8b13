// Command enrich improves stored word records. Heuristics run first
// (cleanup, origin and part-of-speech inference, synonym generation);
// records still below the quality threshold then go through the AI tier,
// which fills only the missing sections. Without an API key configured
// only the heuristic tier runs.
//
// Modes:
//
//	--word <text>  enrich a single word
//	(default)      enrich the oldest records below the quality threshold
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	wordrepo "github.com/vocabguru/backend/internal/adapter/postgres/word"
	"github.com/vocabguru/backend/internal/adapter/provider/anthropic"
	"github.com/vocabguru/backend/internal/app"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/service/enrich"
)

func main() {
	wordFlag := flag.String("word", "", "enrich a single word instead of a batch")
	limitFlag := flag.Int("limit", 0, "max words per batch run (default from config)")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	deps, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer deps.Close()

	svc := buildEnrichService(deps)

	if *wordFlag != "" {
		enrichOne(ctx, deps, svc, *wordFlag)
		return
	}

	limit := deps.Cfg.Enrichment.BatchLimit
	if *limitFlag > 0 {
		limit = *limitFlag
	}
	enrichBatch(ctx, deps, svc, limit)
}

func buildEnrichService(deps *app.Deps) *enrich.Service {
	repo := wordrepo.NewRepository(deps.Pool)
	delay := enrich.WithBatchDelay(deps.Cfg.Enrichment.BatchDelay)

	if deps.Cfg.Enrichment.AIEnabled() {
		ai := anthropic.NewEnricher(deps.Cfg.Enrichment.APIKey, deps.Cfg.Enrichment.Model, deps.Log)
		return enrich.NewService(deps.Log, repo, ai, delay)
	}

	deps.Log.Info("no API key configured, running heuristic tier only")
	return enrich.NewService(deps.Log, repo, nil, delay)
}

func enrichOne(ctx context.Context, deps *app.Deps, svc *enrich.Service, text string) {
	res, err := svc.EnrichWord(ctx, text, enrich.DefaultOptions())
	if err != nil {
		if errors.Is(err, domain.ErrEnrichmentNoChange) {
			deps.Log.Info("word already at its best", slog.String("word", text))
			return
		}
		deps.Log.Error("enrich word",
			slog.String("word", text), slog.String("error", err.Error()))
		os.Exit(1)
	}

	deps.Log.Info("word enriched",
		slog.String("word", res.Word.Word),
		slog.Int("quality_before", res.QualityBefore),
		slog.Int("quality_after", res.QualityAfter),
		slog.Any("changes", res.Changes),
	)
}

func enrichBatch(ctx context.Context, deps *app.Deps, svc *enrich.Service, limit int) {
	result, err := svc.AutoEnrich(ctx, limit, func(p enrich.Progress) {
		if p.CurrentWord != "" {
			deps.Log.Info("enriching",
				slog.String("word", p.CurrentWord),
				slog.Int("processed", p.Processed),
				slog.Int("total", p.Total),
			)
		}
	})
	if err != nil {
		deps.Log.Error("batch enrichment failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	deps.Log.Info("batch enrichment completed",
		slog.Int("total", result.Total),
		slog.Int("successful", result.Successful),
		slog.Int("failed", result.Failed),
	)
}
