// Package settings manages per-user routing preferences, voice configuration
// and the active custom endpoint projection the capability services read.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

type Deps struct {
	Settings   ports.SettingsRepository
	Endpoints  ports.EndpointRepository
	ElevenLabs ports.ElevenLabsRepository
	Log        *log.Logger
}

type Service struct {
	d Deps
}

func New(d Deps) *Service {
	return &Service{d: d}
}

// Get returns the caller's settings, falling back to defaults when none were
// saved yet.
func (s *Service) Get(ctx context.Context, userID int64) (*domain.UserSettings, error) {
	st, err := s.d.Settings.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultUserSettings(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

type UpdateArgs struct {
	SrcLang      *string
	TrgLang      *string
	TranslateAPI *string
	SttAPI       *string
	TtsAPI       *string
}

// Update applies the non-nil fields and keeps the active-endpoint projection
// in sync: picking "custom_<id>" activates that endpoint for its capability,
// picking a built-in engine deactivates all custom endpoints for it.
func (s *Service) Update(ctx context.Context, userID int64, a UpdateArgs) (*domain.UserSettings, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if a.SrcLang != nil {
		st.SrcLang = *a.SrcLang
	}
	if a.TrgLang != nil {
		st.TrgLang = *a.TrgLang
	}
	prefs := []struct {
		value      *string
		field      *string
		capability domain.Capability
	}{
		{a.TranslateAPI, &st.TranslateAPI, domain.CapabilityTranslation},
		{a.SttAPI, &st.SttAPI, domain.CapabilitySpeechToText},
		{a.TtsAPI, &st.TtsAPI, domain.CapabilityTextToSpeech},
	}
	for _, p := range prefs {
		if p.value == nil {
			continue
		}
		if err := s.applyPreference(ctx, userID, p.capability, *p.value); err != nil {
			return nil, err
		}
		*p.field = *p.value
	}

	if err := s.d.Settings.Upsert(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) applyPreference(ctx context.Context, userID int64, c domain.Capability, value string) error {
	if id, ok := ParseCustomID(value); ok {
		if err := s.d.Endpoints.Activate(ctx, userID, id, c); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return &domain.ValidationError{Field: string(c), Message: "custom endpoint not found"}
			}
			return err
		}
		return nil
	}
	return s.d.Endpoints.DeactivateAll(ctx, userID, c)
}

// Resolve implements ports.EndpointResolver over the is_active projection.
// Anonymous callers and lookup failures resolve to nil.
func (s *Service) Resolve(ctx context.Context, userID *int64, c domain.Capability) *domain.CustomEndpoint {
	if userID == nil {
		return nil
	}
	ep, err := s.d.Endpoints.GetActive(ctx, *userID, c)
	if err != nil {
		s.d.Log.Warn("active endpoint lookup failed, using built-in",
			"user_id", *userID, "capability", c, "err", err)
		return nil
	}
	return ep
}

// GetVoice returns the caller's ElevenLabs overrides, or defaults when none
// were saved.
func (s *Service) GetVoice(ctx context.Context, userID int64) (*domain.ElevenLabsSettings, error) {
	es, err := s.d.ElevenLabs.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.ElevenLabsSettings{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return es, nil
}

type VoiceArgs struct {
	VoiceID       *string
	ModelID       *string
	VoiceSettings json.RawMessage
}

// UpdateVoice upserts the caller's ElevenLabs overrides.
func (s *Service) UpdateVoice(ctx context.Context, userID int64, a VoiceArgs) (*domain.ElevenLabsSettings, error) {
	es, err := s.GetVoice(ctx, userID)
	if err != nil {
		return nil, err
	}
	if a.VoiceID != nil {
		es.VoiceID = *a.VoiceID
	}
	if a.ModelID != nil {
		es.ModelID = *a.ModelID
	}
	if len(a.VoiceSettings) > 0 {
		if !json.Valid(a.VoiceSettings) {
			return nil, &domain.ValidationError{Field: "voice_settings", Message: "voice_settings must be valid JSON"}
		}
		es.VoiceSettings = a.VoiceSettings
	}
	if err := s.d.ElevenLabs.Upsert(ctx, es); err != nil {
		return nil, err
	}
	return es, nil
}

// ParseCustomID extracts the endpoint id from a "custom_<id>" preference
// value.
func ParseCustomID(value string) (int64, bool) {
	rest, ok := strings.CutPrefix(value, domain.CustomEnginePrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
