// Package anthropic implements the AI enrichment provider on top of the
// Anthropic Messages API. It is the second-tier enrichment source, consulted
// for the field categories the heuristics cannot fill.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/vocabguru/backend/internal/domain"
	"github.com/vocabguru/backend/internal/provider"
)

// Enricher calls Claude to generate missing sections of a word record.
type Enricher struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// NewEnricher creates an Enricher with its own API client.
func NewEnricher(apiKey, model string, logger *slog.Logger) *Enricher {
	return NewEnricherWithClient(
		anthropic.NewClient(option.WithAPIKey(apiKey)),
		model,
		logger,
	)
}

// NewEnricherWithClient creates an Enricher around an existing client
// (for testing).
func NewEnricherWithClient(client anthropic.Client, model string, logger *slog.Logger) *Enricher {
	return &Enricher{
		client:    client,
		model:     model,
		maxTokens: 2048,
		log:       logger.With("adapter", "anthropic"),
	}
}

// Enrich asks the model to produce the requested categories for the word.
// The current record is sent as context so the model improves rather than
// contradicts existing data. An empty categories slice requests everything.
func (e *Enricher) Enrich(ctx context.Context, w *domain.Word, categories []string) (*provider.AIEnrichment, error) {
	if w == nil || w.Word == "" {
		return nil, fmt.Errorf("%w: word is required", domain.ErrValidation)
	}
	if len(categories) == 0 {
		categories = provider.AllCategories
	}

	recordJSON, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal word %q: %w", w.Word, err)
	}

	prompt := buildPrompt(w.Word, string(recordJSON), categories)

	e.log.DebugContext(ctx, "enrichment request",
		slog.String("word", w.Word),
		slog.Int("categories", len(categories)),
	)

	msg, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("enrichment api call for %q: %w", w.Word, err)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("empty response for %q", w.Word)
	}

	enrichment, err := parseEnrichment(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("parse enrichment for %q: %w", w.Word, err)
	}

	return enrichment, nil
}

// buildPrompt creates the enrichment prompt for a single word.
func buildPrompt(word, recordJSON string, categories []string) string {
	return fmt.Sprintf(`You are a professional lexicographer building a vocabulary-learning dictionary.

Given the word "%s" and its current record, produce improved data for these sections only: %s.

Current record:
%s

Output ONLY a valid JSON object. Include ONLY the requested sections, using this schema:
{
  "morpheme_breakdown": {
    "prefix": {"text": "", "meaning": "", "origin": ""},
    "root": {"text": "", "meaning": "", "origin": ""},
    "suffix": {"text": "", "meaning": "", "origin": ""}
  },
  "etymology": {
    "language_of_origin": "",
    "historical_origins": "",
    "word_evolution": "",
    "cultural_variations": ""
  },
  "definitions": {
    "primary": "",
    "standard": [""],
    "extended": [""],
    "contextual": [""],
    "specialized": [""]
  },
  "analysis": {
    "parts_of_speech": "",
    "synonyms": [""],
    "antonyms": [""],
    "collocations": [""],
    "usage_examples": [""],
    "example_sentence": ""
  },
  "word_forms": {
    "noun": "", "verb": "", "adjective": "", "adverb": "",
    "other_inflections": [""]
  }
}

Rules:
- Keep existing data that is already correct; improve or fill what is missing
- Definitions must be clear and suitable for vocabulary learners
- Provide 3-5 synonyms and 2-3 natural usage examples when producing the analysis section
- Omit prefix or suffix entirely when the word has none
- Output ONLY the JSON, no markdown, no explanations`, word, strings.Join(categories, ", "), recordJSON)
}

// parseEnrichment extracts and decodes the JSON object from a model response.
func parseEnrichment(responseText string) (*provider.AIEnrichment, error) {
	jsonStr, err := extractJSON(responseText)
	if err != nil {
		return nil, err
	}

	if !json.Valid([]byte(jsonStr)) {
		return nil, fmt.Errorf("response does not contain valid JSON")
	}

	var enrichment provider.AIEnrichment
	if err := json.Unmarshal([]byte(jsonStr), &enrichment); err != nil {
		return nil, fmt.Errorf("decode enrichment: %w", err)
	}

	if enrichment.Empty() {
		return nil, fmt.Errorf("response carries no enrichment sections")
	}

	return &enrichment, nil
}

// extractJSON finds the first complete JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
