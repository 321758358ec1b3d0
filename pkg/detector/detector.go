// Package detector guesses the dominant language of a token stream. The
// result is informational: it is reported in the run summary and history,
// never used to alter counting.
package detector

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Unknown is returned when no language could be determined.
const Unknown = "unknown"

// maxSampleTokens caps how much of the corpus is handed to the detector.
const maxSampleTokens = 2000

var candidates = []lingua.Language{
	lingua.Danish,
	lingua.English,
	lingua.German,
	lingua.Swedish,
	lingua.French,
	lingua.Spanish,
}

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over a fixed set of European languages. Language
// models load lazily on first use.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidates...).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of the dominant language of
// tokens, or Unknown.
func (d *Detector) Detect(tokens []string) string {
	if len(tokens) > maxSampleTokens {
		tokens = tokens[:maxSampleTokens]
	}
	text := strings.TrimSpace(strings.Join(tokens, " "))
	if text == "" {
		return Unknown
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
