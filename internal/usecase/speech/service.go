// Package speech implements speech-to-text with per-user provider routing.
package speech

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
	"github.com/longduongbao29/Translator-app/internal/usecase/routing"
)

// Chunks below this size carry no transcribable speech and are not worth a
// provider round trip.
const minChunkBytes = 1024

type Deps struct {
	Builtin           ports.Transcriber
	Resolver          ports.EndpointResolver
	CustomTranscriber func(*domain.CustomEndpoint) ports.Transcriber
	Log               *log.Logger
}

type Service struct {
	d Deps
}

func New(d Deps) *Service {
	return &Service{d: d}
}

type TranscribeArgs struct {
	Audio    []byte
	Filename string
	Language string
	UserID   *int64
}

// Transcribe converts audio to text. Undersized chunks short-circuit to an
// empty transcript without calling any provider.
func (s *Service) Transcribe(ctx context.Context, a TranscribeArgs) (*domain.Transcript, error) {
	if len(a.Audio) == 0 {
		return nil, &domain.ValidationError{Field: "audio", Message: "audio is required"}
	}
	if len(a.Audio) < minChunkBytes {
		s.d.Log.Debug("audio chunk below minimum size, skipping", "bytes", len(a.Audio))
		return &domain.Transcript{Text: ""}, nil
	}

	req := ports.TranscribeRequest{
		Audio:    a.Audio,
		Filename: a.Filename,
		Language: a.Language,
	}
	return routing.Route(ctx, s.d.Resolver, s.d.Log, a.UserID, domain.CapabilitySpeechToText,
		func(ctx context.Context, ep *domain.CustomEndpoint) (*domain.Transcript, error) {
			return s.d.CustomTranscriber(ep).Transcribe(ctx, req)
		},
		func(ctx context.Context) (*domain.Transcript, error) {
			return s.d.Builtin.Transcribe(ctx, req)
		})
}
