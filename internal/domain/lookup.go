package domain

const (
	// PhoneticUnavailable is shown when no phonetic transcription was found.
	PhoneticUnavailable = "Mavjud emas"

	// NoDefinitionsPlaceholder is returned instead of an empty definitions
	// list when the word exists but carries no definitions.
	NoDefinitionsPlaceholder = "Ta'riflar topilmadi."
)

// Lookup is the normalized result of one dictionary query.
type Lookup struct {
	Word        string
	Phonetic    string
	Audio       string
	Definitions []string
}
