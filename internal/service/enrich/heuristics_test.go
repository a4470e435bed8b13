package enrich

import "testing"

func TestInferLanguageOrigin(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"station", "Latin"},
		{"decision", "Latin"},
		{"philosophy", "Greek"},
		{"theory", "Greek"},
		{"schadenfreude", "German"},
		{"bildung", "German"},
		{"picturesque", "French"},
		{"voyage", "French"},
		{"dog", "English"},
		{"", "English"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := inferLanguageOrigin(tt.word); got != tt.want {
				t.Errorf("inferLanguageOrigin(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestInferPartOfSpeech(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"quickly", "adverb"},
		{"station", "noun"},
		{"darkness", "noun"},
		{"movement", "noun"},
		{"running", "verb"},
		{"jumped", "verb"},
		{"beautiful", "adjective"},
		{"careless", "adjective"},
		{"famous", "adjective"},
		{"table", "noun"},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := inferPartOfSpeech(tt.word); got != tt.want {
				t.Errorf("inferPartOfSpeech(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}
