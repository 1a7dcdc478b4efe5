package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/qvo1811/restaurant-backend/internal/core/access"
	"github.com/qvo1811/restaurant-backend/internal/core/domain"
	"github.com/qvo1811/restaurant-backend/internal/port"
)

type ctxKey int

const identityKey ctxKey = iota

// IdentityFrom returns the authenticated caller placed by the auth
// middleware.
func IdentityFrom(ctx context.Context) (access.Identity, bool) {
	id, ok := ctx.Value(identityKey).(access.Identity)
	return id, ok
}

func withIdentity(ctx context.Context, id access.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// requestID tags each request so log lines can be correlated.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	return token, ok && token != ""
}

// authenticate resolves the bearer token into a caller identity. The core
// never parses credentials; it receives (userID, role) from here.
func authenticate(tokens port.TokenService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthenticated))
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			writeError(w, err)
			return
		}

		id := access.Identity{UserID: claims.UserID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), id)))
	}
}

// maybeAuthenticate attaches an identity when a valid token is present and
// lets the request through anonymously otherwise. Used by the public
// catalog listing, where admins see inactive products.
func maybeAuthenticate(tokens port.TokenService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := tokens.Verify(token); err == nil {
				id := access.Identity{UserID: claims.UserID, Role: claims.Role}
				r = r.WithContext(withIdentity(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	}
}

// require gates a handler on the access policy for role-gated operations.
func require(op access.Operation, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok {
			writeError(w, fmt.Errorf("%w: missing identity", domain.ErrUnauthenticated))
			return
		}
		if !access.Allowed(id, op, 0) {
			writeError(w, fmt.Errorf("%w: admin role required", domain.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	}
}
