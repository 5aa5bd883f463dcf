package identity

import (
	"log/slog"
	"net/http"

	"ploshtadka/internal/authz"
	dErrors "ploshtadka/pkg/domain-errors"
	"ploshtadka/pkg/platform/httputil"
	"ploshtadka/pkg/requestcontext"
)

// Authenticate resolves the caller and stores the principal in the request
// context. Failures are answered directly; the wrapped handler never runs.
func Authenticate(resolver Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			p, err := resolver.Resolve(ctx, r)
			if err != nil {
				requestID := requestcontext.RequestID(ctx)
				if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					logger.WarnContext(ctx, "unauthenticated request",
						"error", err,
						"request_id", requestID,
					)
				} else {
					logger.ErrorContext(ctx, "identity resolution failed",
						"error", err,
						"request_id", requestID,
					)
				}
				httputil.WriteError(w, err)
				return
			}
			if unknown := p.Scopes.Unknown(); len(unknown) > 0 {
				logger.DebugContext(ctx, "caller carries scopes outside the venue vocabulary",
					"user_id", p.ID,
					"scopes", unknown,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
			next.ServeHTTP(w, r.WithContext(authz.WithPrincipal(ctx, p)))
		})
	}
}
