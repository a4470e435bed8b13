package enrich

import "strings"

// Tier-1 enrichment: zero-cost inferences from the word's surface form.
// They are deliberately rough; the AI tier overrides nothing they fill,
// it only fills what remains empty.

var originRules = []struct {
	match  func(word string) bool
	origin string
}{
	{suffixRule("tion", "sion"), "Latin"},
	{containsRule("ph", "th"), "Greek"},
	{func(w string) bool { return strings.Contains(w, "sch") || strings.HasSuffix(w, "ung") }, "German"},
	{suffixRule("esque", "age"), "French"},
}

var posRules = []struct {
	match func(word string) bool
	pos   string
}{
	{suffixRule("ly"), "adverb"},
	{suffixRule("tion", "ness", "ment"), "noun"},
	{suffixRule("ing", "ed"), "verb"},
	{suffixRule("ful", "less", "ous"), "adjective"},
}

// inferLanguageOrigin guesses the language of origin from surface features.
// Defaults to English when nothing matches.
func inferLanguageOrigin(word string) string {
	for _, rule := range originRules {
		if rule.match(word) {
			return rule.origin
		}
	}
	return "English"
}

// inferPartOfSpeech guesses the part of speech from the word's suffix.
// Defaults to noun, the most common class.
func inferPartOfSpeech(word string) string {
	for _, rule := range posRules {
		if rule.match(word) {
			return rule.pos
		}
	}
	return "noun"
}

func suffixRule(suffixes ...string) func(string) bool {
	return func(word string) bool {
		for _, sfx := range suffixes {
			if strings.HasSuffix(word, sfx) {
				return true
			}
		}
		return false
	}
}

func containsRule(subs ...string) func(string) bool {
	return func(word string) bool {
		for _, sub := range subs {
			if strings.Contains(word, sub) {
				return true
			}
		}
		return false
	}
}
