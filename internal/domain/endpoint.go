package domain

import (
	"strconv"
	"time"
)

// EndpointMetadata carries optional per-endpoint call customization.
// Headers and BodyParams are merged into the outgoing request; custom values
// override defaults. APIKeyHeader names the header that receives the api key
// instead of a bearer Authorization header.
type EndpointMetadata struct {
	Headers      map[string]string `json:"headers,omitempty"`
	APIKeyHeader string            `json:"api_key_header,omitempty"`
	BodyParams   map[string]any    `json:"body_params,omitempty"`
}

// CustomEndpoint is a user-configured replacement for a built-in provider.
// At most one endpoint per (user, capability) is active at a time; the
// invariant is enforced by the repository's Activate operation.
type CustomEndpoint struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"user_id"`
	Name       string           `json:"name"`
	Capability Capability       `json:"endpoint_type"`
	URL        string           `json:"endpoint_url"`
	APIKey     string           `json:"api_key,omitempty"`
	Metadata   EndpointMetadata `json:"metadata"`
	IsActive   bool             `json:"is_active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Engine returns the identifier reported in results served by this endpoint,
// matching the "custom_<id>" preference value that selects it.
func (e *CustomEndpoint) Engine() string {
	return CustomEnginePrefix + strconv.FormatInt(e.ID, 10)
}

const CustomEnginePrefix = "custom_"
