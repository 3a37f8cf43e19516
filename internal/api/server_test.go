package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/longduongbao29/Translator-app/internal/adapters/auth/token"
	"github.com/longduongbao29/Translator-app/internal/adapters/provider/registry"
	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
	"github.com/longduongbao29/Translator-app/internal/usecase/settings"
	"github.com/longduongbao29/Translator-app/internal/usecase/speech"
	"github.com/longduongbao29/Translator-app/internal/usecase/translation"
	"github.com/longduongbao29/Translator-app/internal/usecase/users"
)

type fakeTranslator struct {
	err error
}

func (f *fakeTranslator) Translate(_ context.Context, text, src, tgt string) (*domain.TranslationResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.TranslationResult{
		SourceText:     text,
		TranslatedText: "translated:" + text,
		SourceLanguage: src,
		TargetLanguage: tgt,
		Engine:         domain.EngineGoogle,
		Confidence:     0.9,
	}, nil
}

// fakeTranscriber reports the byte count it was handed, so stream tests can
// observe chunk accumulation across frames.
type fakeTranscriber struct{}

func (fakeTranscriber) Transcribe(_ context.Context, req ports.TranscribeRequest) (*domain.Transcript, error) {
	return &domain.Transcript{Text: "len:" + strconv.Itoa(len(req.Audio)), Engine: "groq"}, nil
}

type fakeDetector struct{}

func (fakeDetector) Detect(context.Context, string) (*domain.Detection, error) {
	return &domain.Detection{DetectedLanguage: "en", Confidence: 0.95}, nil
}

type fakeUserRepo struct {
	byUsername map[string]*domain.User
	nextID     int64
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.nextID++
	u.ID = f.nextID
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) Update(context.Context, *domain.User) error { return nil }

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) Get(context.Context, int64) (*domain.UserSettings, error) {
	return nil, domain.ErrNotFound
}
func (fakeSettingsRepo) Upsert(context.Context, *domain.UserSettings) error { return nil }

type fakeEndpointRepo struct{}

func (fakeEndpointRepo) Create(context.Context, *domain.CustomEndpoint) error { return nil }
func (fakeEndpointRepo) Get(context.Context, int64, int64) (*domain.CustomEndpoint, error) {
	return nil, domain.ErrNotFound
}
func (fakeEndpointRepo) ListByUser(context.Context, int64) ([]*domain.CustomEndpoint, error) {
	return nil, nil
}
func (fakeEndpointRepo) Update(context.Context, *domain.CustomEndpoint) error { return nil }
func (fakeEndpointRepo) Delete(context.Context, int64, int64) error           { return nil }
func (fakeEndpointRepo) GetActive(context.Context, int64, domain.Capability) (*domain.CustomEndpoint, error) {
	return nil, nil
}
func (fakeEndpointRepo) Activate(context.Context, int64, int64, domain.Capability) error {
	return nil
}
func (fakeEndpointRepo) DeactivateAll(context.Context, int64, domain.Capability) error { return nil }

type fakeHistory struct {
	created []*domain.Translation
}

func (f *fakeHistory) Create(_ context.Context, t *domain.Translation) error {
	t.ID = int64(len(f.created) + 1)
	t.CreatedAt = time.Now().UTC()
	f.created = append(f.created, t)
	return nil
}

func (f *fakeHistory) List(context.Context, int64, int, int) ([]*domain.Translation, error) {
	return f.created, nil
}
func (f *fakeHistory) SetFavorite(context.Context, int64, int64, bool) error { return nil }

func newTestServer(t *testing.T, tr ports.Translator) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)

	engines := registry.New()
	engines.Register(domain.EngineGoogle, tr)

	settingsSvc := settings.New(settings.Deps{
		Settings:  fakeSettingsRepo{},
		Endpoints: fakeEndpointRepo{},
		Log:       logger,
	})
	usersSvc := users.New(users.Deps{
		Users:    &fakeUserRepo{byUsername: make(map[string]*domain.User)},
		Settings: fakeSettingsRepo{},
		Tokens:   token.New("test-secret", time.Hour),
		Log:      logger,
	})
	translationSvc := translation.New(translation.Deps{
		Engines:  engines,
		Detector: fakeDetector{},
		Resolver: settingsSvc,
		History:  &fakeHistory{},
		CustomTranslator: func(*domain.CustomEndpoint) ports.Translator {
			t.Fatal("no custom endpoint should resolve in these tests")
			return nil
		},
		Log: logger,
	})

	speechSvc := speech.New(speech.Deps{
		Builtin:  fakeTranscriber{},
		Resolver: settingsSvc,
		CustomTranscriber: func(*domain.CustomEndpoint) ports.Transcriber {
			t.Fatal("no custom endpoint should resolve in these tests")
			return nil
		},
		Log: logger,
	})

	srv := New(Deps{
		Users:       usersSvc,
		Settings:    settingsSvc,
		Translation: translationSvc,
		Speech:      speechSvc,
		Health:      map[string]HealthChecker{"db": func() error { return nil }},
		Log:         logger,
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestTranslateAnonymous(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})

	resp := postJSON(t, ts.URL+"/api/v1/translation/translate", "", map[string]string{
		"text": "hello", "source_language": "en", "target_language": "vi", "engine": "google",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["translated_text"] != "translated:hello" {
		t.Errorf("translated_text = %v", body["translated_text"])
	}
	if body["translation_engine"] != domain.EngineGoogle {
		t.Errorf("engine = %v", body["translation_engine"])
	}
	if body["id"] != nil {
		t.Errorf("anonymous result carries id %v", body["id"])
	}
	if body["is_favorite"] != false {
		t.Errorf("is_favorite = %v", body["is_favorite"])
	}
}

func TestTranslateValidationStatus(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})
	resp := postJSON(t, ts.URL+"/api/v1/translation/translate", "", map[string]string{
		"text": "", "target_language": "vi",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestTranslateProviderErrorStatus(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{
		err: &domain.ProviderError{Provider: "google", Status: 503, Message: "unavailable"},
	})
	resp := postJSON(t, ts.URL+"/api/v1/translation/translate", "", map[string]string{
		"text": "hello", "target_language": "vi",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHistoryRequiresAuth(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})
	resp, err := http.Get(ts.URL + "/api/v1/translation/history")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestInvalidTokenOnOptionalRouteDegradesToAnonymous(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})
	resp := postJSON(t, ts.URL+"/api/v1/translation/translate", "not-a-token", map[string]string{
		"text": "hello", "target_language": "vi",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for anonymous fallback", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["id"] != nil {
		t.Errorf("invalid token must not attach a user, id = %v", body["id"])
	}
}

func TestRegisterLoginMe(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})

	resp := postJSON(t, ts.URL+"/api/v1/auth/register", "", map[string]string{
		"email": "alice@example.com", "username": "alice", "password": "long enough",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = postJSON(t, ts.URL+"/api/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "long enough",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	login := decode[map[string]any](t, resp)
	tok, _ := login["access_token"].(string)
	if tok == "" {
		t.Fatal("no access token returned")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	meResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if meResp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", meResp.StatusCode)
	}
	me := decode[map[string]any](t, meResp)
	if me["username"] != "alice" {
		t.Errorf("me = %v", me)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[map[string]any](t, resp)
	if body["status"] != "ok" {
		t.Errorf("status = %v", body["status"])
	}
}

func TestSpeechStream(t *testing.T) {
	ts := newTestServer(t, &fakeTranslator{})
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/speech2text/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	defer conn.Close()
	defer resp.Body.Close()

	send := func(size int, final bool) streamResult {
		t.Helper()
		frame := streamFrame{
			Audio: base64.StdEncoding.EncodeToString(make([]byte, size)),
			Final: final,
		}
		if err := conn.WriteJSON(frame); err != nil {
			t.Fatalf("write frame: %v", err)
		}
		var res streamResult
		if err := conn.ReadJSON(&res); err != nil {
			t.Fatalf("read result: %v", err)
		}
		return res
	}

	res := send(1500, false)
	if res.Type != "realtime" || res.Text != "len:1500" {
		t.Fatalf("interim frame = %+v", res)
	}

	// The final frame transcribes everything buffered so far.
	res = send(600, true)
	if res.Type != "fullSentence" || res.Text != "len:2100" {
		t.Fatalf("final frame = %+v", res)
	}

	// Undersized chunk after the flush proves the buffer was cleared and
	// the small-chunk gate returns an empty transcript.
	res = send(500, false)
	if res.Type != "realtime" || res.Text != "" {
		t.Fatalf("post-flush frame = %+v", res)
	}
}
