// Package developer manages the caller-owned integration resources: custom
// provider endpoints and webhook integrations.
package developer

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

type Deps struct {
	Endpoints ports.EndpointRepository
	Webhooks  ports.WebhookRepository
	Log       *log.Logger
}

type Service struct {
	d Deps
}

func New(d Deps) *Service {
	return &Service{d: d}
}

type EndpointArgs struct {
	Name       string
	Capability domain.Capability
	URL        string
	APIKey     string
	Metadata   domain.EndpointMetadata
}

func (a EndpointArgs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if !a.Capability.Valid() {
		return &domain.ValidationError{Field: "endpoint_type", Message: "endpoint_type must be translation, speech2text or text2speech"}
	}
	u, err := url.Parse(a.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &domain.ValidationError{Field: "endpoint_url", Message: "endpoint_url must be a valid http(s) URL"}
	}
	return nil
}

func (s *Service) CreateEndpoint(ctx context.Context, userID int64, a EndpointArgs) (*domain.CustomEndpoint, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	ep := &domain.CustomEndpoint{
		UserID:     userID,
		Name:       a.Name,
		Capability: a.Capability,
		URL:        a.URL,
		APIKey:     a.APIKey,
		Metadata:   a.Metadata,
	}
	if err := s.d.Endpoints.Create(ctx, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

func (s *Service) GetEndpoint(ctx context.Context, userID, id int64) (*domain.CustomEndpoint, error) {
	return s.d.Endpoints.Get(ctx, id, userID)
}

func (s *Service) ListEndpoints(ctx context.Context, userID int64) ([]*domain.CustomEndpoint, error) {
	return s.d.Endpoints.ListByUser(ctx, userID)
}

func (s *Service) UpdateEndpoint(ctx context.Context, userID, id int64, a EndpointArgs) (*domain.CustomEndpoint, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	ep, err := s.d.Endpoints.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	ep.Name = a.Name
	ep.Capability = a.Capability
	ep.URL = a.URL
	if a.APIKey != "" {
		ep.APIKey = a.APIKey
	}
	ep.Metadata = a.Metadata
	if err := s.d.Endpoints.Update(ctx, ep); err != nil {
		return nil, err
	}
	return ep, nil
}

func (s *Service) DeleteEndpoint(ctx context.Context, userID, id int64) error {
	return s.d.Endpoints.Delete(ctx, id, userID)
}

// ActivateEndpoint makes the endpoint the single active one for its
// capability.
func (s *Service) ActivateEndpoint(ctx context.Context, userID, id int64) error {
	ep, err := s.d.Endpoints.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.d.Endpoints.Activate(ctx, userID, id, ep.Capability)
}

func (s *Service) DeactivateEndpoint(ctx context.Context, userID, id int64) error {
	ep, err := s.d.Endpoints.Get(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.d.Endpoints.DeactivateAll(ctx, userID, ep.Capability)
}

type WebhookArgs struct {
	Name       string
	Platform   string
	WebhookURL string
	SecretKey  string
	EventTypes []string
	Config     json.RawMessage
	IsActive   *bool
}

func (a WebhookArgs) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	switch a.Platform {
	case "discord", "slack", "custom":
	default:
		return &domain.ValidationError{Field: "platform", Message: "platform must be discord, slack or custom"}
	}
	u, err := url.Parse(a.WebhookURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &domain.ValidationError{Field: "webhook_url", Message: "webhook_url must be a valid http(s) URL"}
	}
	return nil
}

func (s *Service) CreateWebhook(ctx context.Context, userID int64, a WebhookArgs) (*domain.WebhookIntegration, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	w := &domain.WebhookIntegration{
		UserID:     userID,
		Name:       a.Name,
		Platform:   a.Platform,
		WebhookURL: a.WebhookURL,
		SecretKey:  a.SecretKey,
		EventTypes: a.EventTypes,
		Config:     a.Config,
		IsActive:   true,
	}
	if a.IsActive != nil {
		w.IsActive = *a.IsActive
	}
	if err := s.d.Webhooks.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) ListWebhooks(ctx context.Context, userID int64) ([]*domain.WebhookIntegration, error) {
	return s.d.Webhooks.ListByUser(ctx, userID)
}

func (s *Service) UpdateWebhook(ctx context.Context, userID, id int64, a WebhookArgs) (*domain.WebhookIntegration, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	w, err := s.d.Webhooks.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	w.Name = a.Name
	w.Platform = a.Platform
	w.WebhookURL = a.WebhookURL
	if a.SecretKey != "" {
		w.SecretKey = a.SecretKey
	}
	w.EventTypes = a.EventTypes
	if len(a.Config) > 0 {
		w.Config = a.Config
	}
	if a.IsActive != nil {
		w.IsActive = *a.IsActive
	}
	if err := s.d.Webhooks.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) DeleteWebhook(ctx context.Context, userID, id int64) error {
	return s.d.Webhooks.Delete(ctx, id, userID)
}
