package freedict

// apiEntry mirrors one element of the FreeDictionary API response array.
// A word with several etymologies comes back as several entries.
type apiEntry struct {
	Word     string       `json:"word"`
	Phonetic string       `json:"phonetic"`
	Origin   string       `json:"origin"`
	Meanings []apiMeaning `json:"meanings"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}
