// Package api exposes the capability and account services over HTTP.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/longduongbao29/Translator-app/internal/usecase/developer"
	"github.com/longduongbao29/Translator-app/internal/usecase/settings"
	"github.com/longduongbao29/Translator-app/internal/usecase/speech"
	"github.com/longduongbao29/Translator-app/internal/usecase/synthesis"
	"github.com/longduongbao29/Translator-app/internal/usecase/translation"
	"github.com/longduongbao29/Translator-app/internal/usecase/users"
)

// HealthChecker reports readiness of a backing store.
type HealthChecker func() error

type Deps struct {
	Users       *users.Service
	Settings    *settings.Service
	Translation *translation.Service
	Speech      *speech.Service
	Synthesis   *synthesis.Service
	Developer   *developer.Service
	AvatarDir   string
	Health      map[string]HealthChecker
	Log         *log.Logger
}

type Server struct {
	users       *users.Service
	settings    *settings.Service
	translation *translation.Service
	speech      *speech.Service
	synthesis   *synthesis.Service
	developer   *developer.Service
	avatarDir   string
	health      map[string]HealthChecker
	log         *log.Logger
}

func New(d Deps) *Server {
	return &Server{
		users:       d.Users,
		settings:    d.Settings,
		translation: d.Translation,
		speech:      d.Speech,
		synthesis:   d.Synthesis,
		developer:   d.Developer,
		avatarDir:   d.AvatarDir,
		health:      d.Health,
		log:         d.Log,
	}
}

// Router builds the full route table. Capability routes take an optional
// bearer token so anonymous callers get built-in providers; account and
// developer routes require one.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.recovery, s.logging)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	auth := v1.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	auth.Handle("/me", s.requireAuth(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)

	user := v1.PathPrefix("/users").Subrouter()
	user.Use(s.requireAuth)
	user.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	user.HandleFunc("/me", s.handleUpdateProfile).Methods(http.MethodPut)
	user.HandleFunc("/me/avatar", s.handleUploadAvatar).Methods(http.MethodPost)

	tr := v1.PathPrefix("/translation").Subrouter()
	tr.Use(s.optionalAuth)
	tr.HandleFunc("/translate", s.handleTranslate).Methods(http.MethodPost)
	tr.HandleFunc("/detect-language", s.handleDetect).Methods(http.MethodPost)
	tr.HandleFunc("/languages", s.handleLanguages).Methods(http.MethodGet)
	tr.Handle("/history", s.requireAuth(http.HandlerFunc(s.handleHistory))).Methods(http.MethodGet)
	tr.Handle("/history/{id:[0-9]+}/favorite", s.requireAuth(http.HandlerFunc(s.handleFavorite))).Methods(http.MethodPut)

	stt := v1.PathPrefix("/speech2text").Subrouter()
	stt.Use(s.optionalAuth)
	stt.HandleFunc("/transcribe", s.handleTranscribe).Methods(http.MethodPost)
	stt.HandleFunc("/stream", s.handleSpeechStream)

	tts := v1.PathPrefix("/text2speech").Subrouter()
	tts.Use(s.optionalAuth)
	tts.HandleFunc("/synthesize", s.handleSynthesize).Methods(http.MethodPost)
	tts.HandleFunc("/voices", s.handleVoices).Methods(http.MethodGet)
	tts.HandleFunc("/formats", s.handleFormats).Methods(http.MethodGet)

	dev := v1.PathPrefix("/developer").Subrouter()
	dev.Use(s.requireAuth)
	dev.HandleFunc("/custom-endpoints", s.handleCreateEndpoint).Methods(http.MethodPost)
	dev.HandleFunc("/custom-endpoints", s.handleListEndpoints).Methods(http.MethodGet)
	dev.HandleFunc("/custom-endpoints/{id:[0-9]+}", s.handleGetEndpoint).Methods(http.MethodGet)
	dev.HandleFunc("/custom-endpoints/{id:[0-9]+}", s.handleUpdateEndpoint).Methods(http.MethodPut)
	dev.HandleFunc("/custom-endpoints/{id:[0-9]+}", s.handleDeleteEndpoint).Methods(http.MethodDelete)
	dev.HandleFunc("/custom-endpoints/{id:[0-9]+}/activate", s.handleActivateEndpoint).Methods(http.MethodPost)
	dev.HandleFunc("/custom-endpoints/{id:[0-9]+}/deactivate", s.handleDeactivateEndpoint).Methods(http.MethodPost)
	dev.HandleFunc("/webhooks", s.handleCreateWebhook).Methods(http.MethodPost)
	dev.HandleFunc("/webhooks", s.handleListWebhooks).Methods(http.MethodGet)
	dev.HandleFunc("/webhooks/{id:[0-9]+}", s.handleUpdateWebhook).Methods(http.MethodPut)
	dev.HandleFunc("/webhooks/{id:[0-9]+}", s.handleDeleteWebhook).Methods(http.MethodDelete)

	el := v1.PathPrefix("/elevenlabs").Subrouter()
	el.Handle("/settings", s.requireAuth(http.HandlerFunc(s.handleGetVoice))).Methods(http.MethodGet)
	el.Handle("/settings", s.requireAuth(http.HandlerFunc(s.handleUpdateVoice))).Methods(http.MethodPut)
	el.HandleFunc("/models", s.handleVoiceModels).Methods(http.MethodGet)

	st := v1.PathPrefix("/settings").Subrouter()
	st.Use(s.requireAuth)
	st.HandleFunc("", s.handleGetSettings).Methods(http.MethodGet)
	st.HandleFunc("", s.handleUpdateSettings).Methods(http.MethodPut)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "translator-api",
		"version": "v1",
		"docs":    "/api/v1",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	overall := "ok"
	checks := make(map[string]string, len(s.health))
	for name, check := range s.health {
		if err := check(); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			overall = "degraded"
			continue
		}
		checks[name] = "ok"
	}
	writeJSON(w, status, map[string]any{
		"status": overall,
		"checks": checks,
	})
}
