// Package custom provides generic adapters for user-configured HTTP
// endpoints. Third-party endpoints are heterogeneous and not under our
// control, so request building and response parsing are deliberately
// tolerant.
package custom

import (
	"net/textproto"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/longduongbao29/Translator-app/internal/domain"
)

const (
	// Audio uploads are larger and transcription providers slower, so the
	// speech path gets a longer deadline.
	textTimeout  = 30 * time.Second
	audioTimeout = 60 * time.Second
)

// Hop-by-hop and framing headers a customer config must not override.
var blockedHeaders = map[string]bool{
	"Host":              true,
	"Content-Length":    true,
	"Transfer-Encoding": true,
	"Connection":        true,
}

func newClient(timeout time.Duration) *resty.Client {
	return resty.New().SetTimeout(timeout)
}

// applyAuth sets the configured credentials and extra headers. The api key
// goes into a bearer Authorization header unless the metadata names a
// dedicated header for it.
func applyAuth(r *resty.Request, ep *domain.CustomEndpoint) {
	for name, value := range ep.Metadata.Headers {
		canonical := textproto.CanonicalMIMEHeaderKey(name)
		if blockedHeaders[canonical] {
			continue
		}
		r.SetHeader(name, value)
	}
	if ep.APIKey == "" {
		return
	}
	if h := ep.Metadata.APIKeyHeader; h != "" {
		r.SetHeader(h, ep.APIKey)
	} else {
		r.SetHeader("Authorization", "Bearer "+ep.APIKey)
	}
}

// mergeBody overlays configured body params onto the defaults; custom values
// win deterministically.
func mergeBody(defaults map[string]any, ep *domain.CustomEndpoint) map[string]any {
	for k, v := range ep.Metadata.BodyParams {
		defaults[k] = v
	}
	return defaults
}

// firstString returns the first non-empty string found under the candidate
// keys.
func firstString(obj map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

func callError(ep *domain.CustomEndpoint, status int, message string) *domain.ProviderError {
	return &domain.ProviderError{Provider: ep.Engine(), Status: status, Message: message}
}
