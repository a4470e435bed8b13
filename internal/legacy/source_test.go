package legacy

import (
	"testing"

	"github.com/vocabguru/backend/internal/domain"
)

func TestNewSource(t *testing.T) {
	s, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	words := s.Words()
	if len(words) != 5 {
		t.Fatalf("Words() = %d records, want 5", len(words))
	}

	for _, w := range words {
		if w.Word == "" {
			t.Error("embedded record with empty word text")
		}
		if !w.HasSource(domain.SourceLegacy) {
			t.Errorf("%q missing legacy source tag", w.Word)
		}
		if w.QualityScore == 0 {
			t.Errorf("%q not scored", w.Word)
		}
		if w.Defs.Primary == "" || w.Defs.Primary == domain.NoDefinitionFallback {
			t.Errorf("%q missing primary definition", w.Word)
		}
	}
}

func TestSource_Lookup(t *testing.T) {
	s, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	// Lookup normalizes its input, so the historical capitalized form hits.
	w := s.Lookup("  Abundant ")
	if w == nil {
		t.Fatal(`Lookup("  Abundant ") = nil`)
	}
	if w.Word != "abundant" {
		t.Errorf("word = %q, want %q", w.Word, "abundant")
	}
	if w.Etymology.LanguageOfOrigin != "Latin" {
		t.Errorf("language of origin = %q, want Latin", w.Etymology.LanguageOfOrigin)
	}
	if w.Morphemes.Prefix == nil || w.Morphemes.Prefix.Text != "ab-" {
		t.Errorf("prefix not carried through normalization: %+v", w.Morphemes.Prefix)
	}

	if got := s.Lookup("nosuchword"); got != nil {
		t.Errorf(`Lookup("nosuchword") = %+v, want nil`, got)
	}
}

func TestSource_WordsReturnsCopies(t *testing.T) {
	s, err := NewSource()
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	first := s.Words()
	first[0].Word = "mutated"

	if s.Words()[0].Word == "mutated" {
		t.Error("Words() exposes internal state")
	}
}
