package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/usecase/developer"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

type endpointRequest struct {
	Name     string                  `json:"name"`
	Type     string                  `json:"endpoint_type"`
	URL      string                  `json:"endpoint_url"`
	APIKey   string                  `json:"api_key"`
	Metadata domain.EndpointMetadata `json:"metadata"`
}

func (req endpointRequest) args() developer.EndpointArgs {
	return developer.EndpointArgs{
		Name:       req.Name,
		Capability: domain.Capability(req.Type),
		URL:        req.URL,
		APIKey:     req.APIKey,
		Metadata:   req.Metadata,
	}
}

func (s *Server) handleCreateEndpoint(w http.ResponseWriter, r *http.Request) {
	var req endpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ep, err := s.developer.CreateEndpoint(r.Context(), userFrom(r.Context()).ID, req.args())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ep)
}

func (s *Server) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	eps, err := s.developer.ListEndpoints(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": eps})
}

func (s *Server) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid endpoint id")
		return
	}
	ep, err := s.developer.GetEndpoint(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ep)
}

func (s *Server) handleUpdateEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid endpoint id")
		return
	}
	var req endpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ep, err := s.developer.UpdateEndpoint(r.Context(), userFrom(r.Context()).ID, id, req.args())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ep)
}

func (s *Server) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid endpoint id")
		return
	}
	if err := s.developer.DeleteEndpoint(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivateEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid endpoint id")
		return
	}
	if err := s.developer.ActivateEndpoint(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_active": true})
}

func (s *Server) handleDeactivateEndpoint(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid endpoint id")
		return
	}
	if err := s.developer.DeactivateEndpoint(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_active": false})
}

type webhookRequest struct {
	Name       string          `json:"name"`
	Platform   string          `json:"platform"`
	WebhookURL string          `json:"webhook_url"`
	SecretKey  string          `json:"secret_key"`
	EventTypes []string        `json:"event_types"`
	Config     json.RawMessage `json:"config"`
	IsActive   *bool           `json:"is_active"`
}

func (req webhookRequest) args() developer.WebhookArgs {
	return developer.WebhookArgs{
		Name:       req.Name,
		Platform:   req.Platform,
		WebhookURL: req.WebhookURL,
		SecretKey:  req.SecretKey,
		EventTypes: req.EventTypes,
		Config:     req.Config,
		IsActive:   req.IsActive,
	}
}

func (s *Server) handleCreateWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	wh, err := s.developer.CreateWebhook(r.Context(), userFrom(r.Context()).ID, req.args())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wh)
}

func (s *Server) handleListWebhooks(w http.ResponseWriter, r *http.Request) {
	hooks, err := s.developer.ListWebhooks(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": hooks})
}

func (s *Server) handleUpdateWebhook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid webhook id")
		return
	}
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	wh, err := s.developer.UpdateWebhook(r.Context(), userFrom(r.Context()).ID, id, req.args())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wh)
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeErrorMessage(w, http.StatusBadRequest, "invalid webhook id")
		return
	}
	if err := s.developer.DeleteWebhook(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
