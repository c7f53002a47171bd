package advisor

import (
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// minLanguageSample is the shortest text worth classifying.
const minLanguageSample = 20

// LanguageDetector names the language of a text, or returns "" when unsure.
type LanguageDetector interface {
	Detect(text string) string
}

// LinguaDetector detects languages with lingua-go in low accuracy mode.
type LinguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over all supported languages.
// Language models are loaded lazily on first use.
func NewLinguaDetector() *LinguaDetector {
	return &LinguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build(),
	}
}

// Detect implements LanguageDetector.
func (d *LinguaDetector) Detect(text string) string {
	if utf8.RuneCountInString(text) < minLanguageSample {
		return ""
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return lang.String()
}
