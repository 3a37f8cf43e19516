// Package synthesis implements text-to-speech with per-user provider routing
// and per-user voice configuration.
package synthesis

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
	"github.com/longduongbao29/Translator-app/internal/usecase/routing"
)

const maxTextLen = 5000

type Deps struct {
	Builtin           ports.Synthesizer
	Resolver          ports.EndpointResolver
	ElevenLabs        ports.ElevenLabsRepository
	CustomSynthesizer func(*domain.CustomEndpoint) ports.Synthesizer
	Log               *log.Logger
}

type Service struct {
	d Deps
}

func New(d Deps) *Service {
	return &Service{d: d}
}

type SynthesizeArgs struct {
	Text         string
	LanguageCode string
	VoiceID      string
	ModelName    string
	OutputFormat string
	UserID       *int64
}

// Synthesize converts text to audio. Explicit request parameters win over the
// caller's saved voice settings, which in turn win over adapter defaults.
func (s *Service) Synthesize(ctx context.Context, a SynthesizeArgs) (*domain.Speech, error) {
	if strings.TrimSpace(a.Text) == "" {
		return nil, &domain.ValidationError{Field: "text", Message: "text is required"}
	}
	if utf8.RuneCountInString(a.Text) > maxTextLen {
		return nil, &domain.ValidationError{Field: "text", Message: "text exceeds maximum length of 5000 characters"}
	}

	req := ports.SynthesizeRequest{
		Text:         a.Text,
		LanguageCode: a.LanguageCode,
		VoiceID:      a.VoiceID,
		ModelName:    a.ModelName,
		OutputFormat: a.OutputFormat,
	}
	if a.UserID != nil {
		s.applyUserVoice(ctx, *a.UserID, &req)
	}

	return routing.Route(ctx, s.d.Resolver, s.d.Log, a.UserID, domain.CapabilityTextToSpeech,
		func(ctx context.Context, ep *domain.CustomEndpoint) (*domain.Speech, error) {
			return s.d.CustomSynthesizer(ep).Synthesize(ctx, req)
		},
		func(ctx context.Context) (*domain.Speech, error) {
			return s.d.Builtin.Synthesize(ctx, req)
		})
}

func (s *Service) applyUserVoice(ctx context.Context, userID int64, req *ports.SynthesizeRequest) {
	if s.d.ElevenLabs == nil {
		return
	}
	es, err := s.d.ElevenLabs.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.d.Log.Warn("failed to load voice settings", "user_id", userID, "err", err)
		}
		return
	}
	if req.VoiceID == "" {
		req.VoiceID = es.VoiceID
	}
	if req.ModelName == "" {
		req.ModelName = es.ModelID
	}
	if len(es.VoiceSettings) > 0 {
		req.VoiceSettings = es.VoiceSettings
	}
}
