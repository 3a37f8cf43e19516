// Package langdetect wraps the lingua statistical language detector.
package langdetect

import (
	"context"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type Detector struct {
	det lingua.LanguageDetector
}

// New builds a detector over the languages the service supports. Restricting
// the candidate set keeps detection fast and memory-bounded.
func New() *Detector {
	languages := []lingua.Language{
		lingua.English,
		lingua.Vietnamese,
		lingua.French,
		lingua.German,
		lingua.Spanish,
		lingua.Japanese,
		lingua.Korean,
		lingua.Chinese,
	}
	return &Detector{
		det: lingua.NewLanguageDetectorBuilder().FromLanguages(languages...).Build(),
	}
}

func (d *Detector) Detect(ctx context.Context, text string) (*domain.Detection, error) {
	values := d.det.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return nil, &domain.ProviderError{Provider: domain.EngineLingua, Message: "no language detected"}
	}
	best := values[0]
	return &domain.Detection{
		DetectedLanguage: strings.ToLower(best.Language().IsoCode639_1().String()),
		Confidence:       best.Value(),
	}, nil
}
