package service

import (
	"context"
	"testing"
	"time"

	"github.com/Vibush01/EasyFitTrack/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-do-not-use"

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	return NewAuthService(userRepo, testJWTSecret, time.Hour), userRepo
}

func TestRegister_AllRoles(t *testing.T) {
	svc, _ := newAuthFixture(t)

	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleGym, domain.RoleTrainer, domain.RoleMember} {
		user, err := svc.Register(context.Background(), "User "+string(role), string(role)+"@example.com", "password123", role, nil)
		require.NoError(t, err)
		assert.Equal(t, role, user.Role)
		assert.Empty(t, user.PasswordHash, "hash must never leave the service")
	}

	_, err := svc.Register(context.Background(), "X", "x@example.com", "password123", "manager", nil)
	assert.True(t, domain.IsKind(err, domain.ErrKindValidation))
}

func TestRegister_GymProfileFields(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	profile := &GymProfile{Address: "12 MG Road", City: "Pune", Description: "24/7 floor"}
	gym, err := svc.Register(context.Background(), "Iron Temple", "iron@example.com", "password123", domain.RoleGym, profile)
	require.NoError(t, err)
	assert.Equal(t, "Pune", gym.City)

	// Profile fields are ignored for non-gym roles.
	member, err := svc.Register(context.Background(), "Asha", "asha@example.com", "password123", domain.RoleMember, profile)
	require.NoError(t, err)
	assert.Empty(t, member.City)

	stored, err := userRepo.GetByID(context.Background(), gym.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 MG Road", stored.Address)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "Asha", "asha@example.com", "password123", domain.RoleMember, nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Impostor", "asha@example.com", "different456", domain.RoleTrainer, nil)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)

	registered, err := svc.Register(context.Background(), "Asha", "asha@example.com", "password123", domain.RoleMember, nil)
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "asha@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	// The token carries the user ID and role under the expected claims.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), "Asha", "asha@example.com", "password123", domain.RoleMember, nil)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
