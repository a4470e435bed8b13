package domain

import (
	"testing"
	"time"
)

func TestWord_AddSource(t *testing.T) {
	w := &Word{Word: "abundant"}

	w.AddSource(SourceLegacy)
	w.AddSource(SourceDictionary)
	w.AddSource(SourceLegacy) // duplicate
	w.AddSource("")           // empty is ignored

	if len(w.SourceApis) != 2 {
		t.Fatalf("SourceApis = %v, want 2 unique tags", w.SourceApis)
	}
	if !w.HasSource(SourceLegacy) || !w.HasSource(SourceDictionary) {
		t.Errorf("missing expected source tags: %v", w.SourceApis)
	}
	if w.HasSource(SourceAI) {
		t.Errorf("unexpected source tag %q", SourceAI)
	}
}

func TestWord_Touch(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w := &Word{}
	w.Touch(now)
	if !w.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", w.UpdatedAt, now)
	}
}
