// Package routing decides, per request, whether a capability call goes to the
// caller's active custom endpoint or a built-in provider.
package routing

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

// Route resolves the caller's custom endpoint for the capability and invokes
// custom first when one is active. A custom-endpoint failure is logged and
// swallowed — a misconfigured endpoint must never make the capability
// unavailable — and control falls through to builtin. Builtin failures
// propagate to the caller untouched.
func Route[T any](
	ctx context.Context,
	resolver ports.EndpointResolver,
	logger *log.Logger,
	userID *int64,
	capability domain.Capability,
	custom func(context.Context, *domain.CustomEndpoint) (T, error),
	builtin func(context.Context) (T, error),
) (T, error) {
	if ep := resolver.Resolve(ctx, userID, capability); ep != nil {
		out, err := custom(ctx, ep)
		if err == nil {
			return out, nil
		}
		logger.Warn("custom endpoint failed, falling back to built-in",
			"capability", capability, "endpoint", ep.Name, "err", err)
	}
	return builtin(ctx)
}
