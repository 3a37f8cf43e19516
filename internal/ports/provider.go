package ports

import (
	"context"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

// Translator converts text between languages. Implementations return a
// *domain.ProviderError on any upstream failure and never swallow it.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (*domain.TranslationResult, error)
}

// Detector guesses the language of a text.
type Detector interface {
	Detect(ctx context.Context, text string) (*domain.Detection, error)
}

type TranscribeRequest struct {
	Audio    []byte
	Filename string
	Language string // "" or "auto" lets the provider decide
	Model    string
}

type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (*domain.Transcript, error)
}

type SynthesizeRequest struct {
	Text         string
	LanguageCode string
	VoiceID      string
	ModelName    string
	OutputFormat string
	// VoiceSettings is provider-specific JSON; nil keeps the adapter default.
	VoiceSettings []byte
}

type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesizeRequest) (*domain.Speech, error)
}
