package ports

import (
	"context"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

// WebhookSender delivers one event to one integration. Delivery is
// best-effort; failures are logged by the caller, never surfaced.
type WebhookSender interface {
	Send(ctx context.Context, w *domain.WebhookIntegration, event string, payload map[string]any) error
}

// EndpointResolver answers "is there an active custom endpoint for this
// caller". It never fails: lookup errors degrade to nil so a broken
// customer configuration cannot block fallback to a built-in provider.
type EndpointResolver interface {
	Resolve(ctx context.Context, userID *int64, c domain.Capability) *domain.CustomEndpoint
}
