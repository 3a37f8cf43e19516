package domain

import (
	"encoding/json"
	"time"
)

// Webhook event types.
const (
	EventTranslationCompleted = "translation.completed"
	EventTranscriptReady      = "transcript.ready"
)

type WebhookIntegration struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	Name       string          `json:"name"`
	Platform   string          `json:"platform"` // discord | slack | custom
	WebhookURL string          `json:"webhook_url"`
	SecretKey  string          `json:"secret_key,omitempty"`
	EventTypes []string        `json:"event_types,omitempty"`
	Config     json.RawMessage `json:"config,omitempty"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Subscribed reports whether the integration wants the given event. An empty
// event list means all events.
func (w *WebhookIntegration) Subscribed(event string) bool {
	if len(w.EventTypes) == 0 {
		return true
	}
	for _, e := range w.EventTypes {
		if e == event {
			return true
		}
	}
	return false
}
