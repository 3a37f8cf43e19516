package domain

import "time"

// Translation is a persisted history row. Anonymous requests are never
// persisted, so every stored row carries a user id.
type Translation struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	SourceLanguage string    `json:"source_language"`
	TargetLanguage string    `json:"target_language"`
	Engine         string    `json:"translation_engine"`
	IsFavorite     bool      `json:"is_favorite"`
	CreatedAt      time.Time `json:"created_at"`
}

// TranslationResult is the normalized outcome of one translate call,
// regardless of which adapter served it. ID and CreatedAt stay nil for
// anonymous callers.
type TranslationResult struct {
	ID             *int64     `json:"id"`
	SourceText     string     `json:"source_text"`
	TranslatedText string     `json:"translated_text"`
	SourceLanguage string     `json:"source_language"`
	TargetLanguage string     `json:"target_language"`
	Engine         string     `json:"translation_engine"`
	Confidence     float64    `json:"confidence,omitempty"`
	IsFavorite     bool       `json:"is_favorite"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

type Detection struct {
	DetectedLanguage string  `json:"detected_language"`
	Confidence       float64 `json:"confidence"`
}

type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}
