package port

import "github.com/qvo1811/restaurant-backend/internal/core/domain"

// TokenClaims is the identity carried by an issued token.
type TokenClaims struct {
	UserID int64
	Email  string
	Role   domain.Role
}

type TokenService interface {
	// Issue signs a token for the user.
	Issue(user domain.User) (string, error)

	// Verify parses and validates a token. Invalid or expired tokens
	// surface domain.ErrUnauthenticated.
	Verify(token string) (TokenClaims, error)
}
