package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qvo1811/restaurant-backend/internal/core/domain"
)

func testUser() domain.User {
	return domain.User{ID: 7, Email: "ana@example.com", Role: domain.RoleAdmin}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", "restaurant-backend", time.Hour)

	signed, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	got, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", "restaurant-backend", time.Hour)
	verifier := NewJWTService("secret-b", "restaurant-backend", time.Hour)

	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestVerify_WrongIssuer(t *testing.T) {
	issuer := NewJWTService("test-secret", "someone-else", time.Hour)
	verifier := NewJWTService("test-secret", "restaurant-backend", time.Hour)

	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestVerify_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", "restaurant-backend", time.Hour)
	svc.clock = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, err := svc.Issue(testUser())
	require.NoError(t, err)

	svc.clock = time.Now
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestVerify_Garbage(t *testing.T) {
	svc := NewJWTService("test-secret", "restaurant-backend", time.Hour)

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
