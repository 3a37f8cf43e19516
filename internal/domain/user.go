package domain

import (
	"encoding/json"
	"time"
)

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserSettings holds per-user routing preferences. API preference values are
// either a built-in engine name ("google", "openai", "groq", "elevenlabs")
// or "custom_<endpoint_id>" pointing at a custom endpoint.
type UserSettings struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	SrcLang      string    `json:"src_lang"`
	TrgLang      string    `json:"trg_lang"`
	TranslateAPI string    `json:"translate_api"`
	SttAPI       string    `json:"stt_api"`
	TtsAPI       string    `json:"tts_api"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func DefaultUserSettings(userID int64) *UserSettings {
	return &UserSettings{
		UserID:       userID,
		SrcLang:      "auto",
		TrgLang:      "en",
		TranslateAPI: EngineGoogle,
		SttAPI:       EngineGroq,
		TtsAPI:       EngineElevenLabs,
	}
}

// ElevenLabsSettings overrides the default voice configuration per user.
type ElevenLabsSettings struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	VoiceID       string          `json:"voice_id"`
	ModelID       string          `json:"model_id"`
	VoiceSettings json.RawMessage `json:"voice_settings,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
