package ports

import (
	"context"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type SettingsRepository interface {
	Get(ctx context.Context, userID int64) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s *domain.UserSettings) error
}

type ElevenLabsRepository interface {
	Get(ctx context.Context, userID int64) (*domain.ElevenLabsSettings, error)
	Upsert(ctx context.Context, s *domain.ElevenLabsSettings) error
}

type EndpointRepository interface {
	Create(ctx context.Context, e *domain.CustomEndpoint) error
	Get(ctx context.Context, id, userID int64) (*domain.CustomEndpoint, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.CustomEndpoint, error)
	Update(ctx context.Context, e *domain.CustomEndpoint) error
	Delete(ctx context.Context, id, userID int64) error
	// GetActive returns the single active endpoint for the pair, or nil.
	GetActive(ctx context.Context, userID int64, c domain.Capability) (*domain.CustomEndpoint, error)
	// Activate deactivates every endpoint of the (user, capability) pair and
	// activates the target, atomically. Returns domain.ErrNotFound when the
	// target does not exist for that user and capability.
	Activate(ctx context.Context, userID, endpointID int64, c domain.Capability) error
	DeactivateAll(ctx context.Context, userID int64, c domain.Capability) error
}

type WebhookRepository interface {
	Create(ctx context.Context, w *domain.WebhookIntegration) error
	Get(ctx context.Context, id, userID int64) (*domain.WebhookIntegration, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.WebhookIntegration, error)
	ListActive(ctx context.Context, userID int64) ([]*domain.WebhookIntegration, error)
	Update(ctx context.Context, w *domain.WebhookIntegration) error
	Delete(ctx context.Context, id, userID int64) error
}

type TranslationRepository interface {
	Create(ctx context.Context, t *domain.Translation) error
	List(ctx context.Context, userID int64, offset, limit int) ([]*domain.Translation, error)
	SetFavorite(ctx context.Context, id, userID int64, favorite bool) error
}
