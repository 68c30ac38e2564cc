package analysis

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// LanguageUnknown is reported whenever detection could not produce a
// meaningful answer (empty corpus, detector gave up). Detection is advisory:
// it degrades to this sentinel, it never fails a run.
const LanguageUnknown = "unknown"

// Detector identifies the dominant language of a text. ok is false when no
// confident answer exists.
type Detector interface {
	Detect(text string) (code string, ok bool)
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a Detector backed by lingua over all supported
// languages. Construction is expensive; build once per process and reuse.
func NewDetector() Detector {
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Detect returns the lower-cased ISO 639-1 code of the detected language.
func (d *linguaDetector) Detect(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// DetectOrUnknown resolves a detection to its final report value, absorbing
// failures into the sentinel.
func DetectOrUnknown(d Detector, text string) string {
	if code, ok := d.Detect(text); ok {
		return code
	}
	return LanguageUnknown
}
