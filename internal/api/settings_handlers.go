package api

import (
	"encoding/json"
	"net/http"

	"github.com/longduongbao29/Translator-app/internal/usecase/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := s.settings.Get(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type settingsRequest struct {
	SrcLang      *string `json:"src_lang"`
	TrgLang      *string `json:"trg_lang"`
	TranslateAPI *string `json:"translate_api"`
	SttAPI       *string `json:"stt_api"`
	TtsAPI       *string `json:"tts_api"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	st, err := s.settings.Update(r.Context(), userFrom(r.Context()).ID, settings.UpdateArgs{
		SrcLang:      req.SrcLang,
		TrgLang:      req.TrgLang,
		TranslateAPI: req.TranslateAPI,
		SttAPI:       req.SttAPI,
		TtsAPI:       req.TtsAPI,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleGetVoice(w http.ResponseWriter, r *http.Request) {
	es, err := s.settings.GetVoice(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, es)
}

type voiceRequest struct {
	VoiceID       *string         `json:"voice_id"`
	ModelID       *string         `json:"model_id"`
	VoiceSettings json.RawMessage `json:"voice_settings"`
}

func (s *Server) handleUpdateVoice(w http.ResponseWriter, r *http.Request) {
	var req voiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	es, err := s.settings.UpdateVoice(r.Context(), userFrom(r.Context()).ID, settings.VoiceArgs{
		VoiceID:       req.VoiceID,
		ModelID:       req.ModelID,
		VoiceSettings: req.VoiceSettings,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, es)
}
