// Package discordhook delivers webhook events. Discord webhook URLs get a
// chat-formatted message; every other platform receives a generic JSON
// envelope.
package discordhook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type Sender struct {
	http *resty.Client
}

func New() *Sender {
	return &Sender{http: resty.New().SetTimeout(10 * time.Second)}
}

func (s *Sender) Send(ctx context.Context, w *domain.WebhookIntegration, event string, payload map[string]any) error {
	var body any
	switch w.Platform {
	case "discord":
		body = map[string]any{
			"username": "Translator",
			"content":  discordContent(event, payload),
		}
	default:
		body = map[string]any{"event": event, "data": payload}
	}

	r := s.http.R().SetContext(ctx).SetHeader("Content-Type", "application/json").SetBody(body)
	if w.SecretKey != "" {
		r.SetHeader("X-Webhook-Secret", w.SecretKey)
	}
	rr, err := r.Post(w.WebhookURL)
	if err != nil {
		return err
	}
	if rr.IsError() {
		return fmt.Errorf("webhook %s: %s", w.Name, rr.Status())
	}
	return nil
}

func discordContent(event string, payload map[string]any) string {
	switch event {
	case domain.EventTranslationCompleted:
		return fmt.Sprintf("**Translation** (%v → %v)\n> %v\n%v",
			payload["source_language"], payload["target_language"],
			payload["source_text"], payload["translated_text"])
	case domain.EventTranscriptReady:
		return fmt.Sprintf("**Transcript**\n%v", payload["text"])
	default:
		return fmt.Sprintf("**%s**: %v", event, payload)
	}
}
