package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/longduongbao29/Translator-app/internal/usecase/translation"
)

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_language"`
	TargetLang string `json:"target_language"`
	Engine     string `json:"engine"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.translation.Translate(r.Context(), translation.TranslateArgs{
		Text:       req.Text,
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		Engine:     req.Engine,
		UserID:     userIDFrom(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type detectRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	d, err := s.translation.Detect(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"languages": s.translation.Languages(),
		"engines":   s.translation.Engines(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	offset := intQuery(r, "skip", 0)
	limit := intQuery(r, "limit", 20)
	items, err := s.translation.History(r.Context(), userFrom(r.Context()).ID, offset, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "skip": offset, "limit": limit})
}

type favoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid translation id")
		return
	}
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.translation.SetFavorite(r.Context(), userFrom(r.Context()).ID, id, req.IsFavorite); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_favorite": req.IsFavorite})
}

func intQuery(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
