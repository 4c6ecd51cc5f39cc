package ingest

import "unicode"

// scriptLanguages maps unicode scripts onto ISO 639-1 codes for the
// languages this service expects to see in campus documents
var scriptLanguages = []struct {
	table *unicode.RangeTable
	code  string
}{
	{unicode.Devanagari, "hi"},
	{unicode.Bengali, "bn"},
	{unicode.Tamil, "ta"},
	{unicode.Telugu, "te"},
	{unicode.Gurmukhi, "pa"},
}

// DetectLanguage guesses the language of a text by script. Latin-script and
// unrecognized text default to English.
func DetectLanguage(text string) string {
	for _, r := range text {
		for _, script := range scriptLanguages {
			if unicode.Is(script.table, r) {
				return script.code
			}
		}
	}
	return "en"
}
