package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/foyerapp/foyer-backend/internal/domain"
	"github.com/foyerapp/foyer-backend/pkg/ctxutil"
)

// membershipResolver resolves the caller's active foyer and rule state.
type membershipResolver interface {
	ActiveFoyerID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	HasAcceptedRule(ctx context.Context, userID uuid.UUID) (bool, error)
}

// RequireFoyer returns middleware for foyer-scoped routes. It resolves
// the authenticated user's active foyer, checks that the foyer rule has
// been accepted, and stores the foyer ID in the request context.
// Runs after Auth.
func RequireFoyer(resolver membershipResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := ctxutil.UserIDFromCtx(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			foyerID, err := resolver.ActiveFoyerID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					http.Error(w, "no foyer membership", http.StatusForbidden)
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			accepted, err := resolver.HasAcceptedRule(r.Context(), userID)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !accepted {
				http.Error(w, "foyer rule not accepted", http.StatusForbidden)
				return
			}

			ctx := ctxutil.WithFoyerID(r.Context(), foyerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
