package api

import (
	"net/http"
	"strconv"

	"github.com/longduongbao29/Translator-app/internal/adapters/provider/elevenlabs"
	"github.com/longduongbao29/Translator-app/internal/usecase/synthesis"
)

// handleSynthesize accepts form fields and streams the audio straight back.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil && err != http.ErrNotMultipart {
		writeErrorMessage(w, http.StatusBadRequest, "invalid form body")
		return
	}
	sp, err := s.synthesis.Synthesize(r.Context(), synthesis.SynthesizeArgs{
		Text:         r.FormValue("text"),
		LanguageCode: r.FormValue("language_code"),
		VoiceID:      r.FormValue("voice_id"),
		ModelName:    r.FormValue("model_name"),
		OutputFormat: r.FormValue("output_format"),
		UserID:       userIDFrom(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", sp.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(sp.Audio)))
	w.Header().Set("X-Engine", sp.Engine)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(sp.Audio)
}

func (s *Server) handleVoices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"voices": elevenlabs.SupportedVoices()})
}

func (s *Server) handleFormats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"formats": elevenlabs.SupportedFormats()})
}

func (s *Server) handleVoiceModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"models": elevenlabs.SupportedModels()})
}
