// Command resolve looks up each word given as an argument, fetching and
// persisting any that are not in the store yet. Words already stored are
// returned as-is; concurrent inserts of the same word converge on one
// merged record.
//
// Usage: resolve <word> [word...]
//
// Exit codes: 0 = all words resolved, 1 = error or unknown word.
package main

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/vocabguru/backend/internal/legacy"
	"github.com/vocabguru/backend/internal/service/words"
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: resolve <word> [word...]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
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

	failed := false
	for _, text := range flag.Args() {
		w, err := svc.ResolveWord(ctx, text)
		if err != nil {
			failed = true
			if errors.Is(err, words.ErrWordUnknown) {
				deps.Log.Warn("word unknown to all sources", slog.String("word", text))
			} else {
				deps.Log.Error("resolve word",
					slog.String("word", text), slog.String("error", err.Error()))
			}
			continue
		}
		deps.Log.Info("word resolved",
			slog.String("word", w.Word),
			slog.String("id", w.ID.String()),
			slog.Int("quality", w.QualityScore),
			slog.Any("sources", w.SourceApis),
		)
		out, err := json.MarshalIndent(w, "", "  ")
		if err != nil {
			deps.Log.Error("encode word", slog.String("error", err.Error()))
			failed = true
			continue
		}
		fmt.Println(string(out))
	}
	if failed {
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
