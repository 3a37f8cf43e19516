package discordhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

func TestSendDiscordFormatsContent(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New().Send(context.Background(), &domain.WebhookIntegration{
		Name:       "my discord",
		Platform:   "discord",
		WebhookURL: srv.URL,
	}, domain.EventTranslationCompleted, map[string]any{
		"source_text":     "hello",
		"translated_text": "xin chào",
		"source_language": "en",
		"target_language": "vi",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotBody["username"] != "Translator" {
		t.Errorf("username = %v", gotBody["username"])
	}
	content, _ := gotBody["content"].(string)
	for _, want := range []string{"hello", "xin chào", "en", "vi"} {
		if !strings.Contains(content, want) {
			t.Errorf("content %q missing %q", content, want)
		}
	}
}

func TestSendGenericEnvelopeWithSecret(t *testing.T) {
	var gotSecret string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Webhook-Secret")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	err := New().Send(context.Background(), &domain.WebhookIntegration{
		Name:       "custom hook",
		Platform:   "custom",
		WebhookURL: srv.URL,
		SecretKey:  "s3cret",
	}, domain.EventTranscriptReady, map[string]any{"text": "done"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotSecret != "s3cret" {
		t.Errorf("secret header = %q", gotSecret)
	}
	if gotBody["event"] != domain.EventTranscriptReady {
		t.Errorf("event = %v", gotBody["event"])
	}
}

func TestSendUpstreamErrorReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusForbidden)
	}))
	defer srv.Close()

	err := New().Send(context.Background(), &domain.WebhookIntegration{
		Name:       "hook",
		Platform:   "discord",
		WebhookURL: srv.URL,
	}, domain.EventTranslationCompleted, nil)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}
