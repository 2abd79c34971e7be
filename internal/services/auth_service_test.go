package services

import (
	"context"
	"testing"
	"time"

	"github.com/eventease/eventease/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVolunteerCode = "gate-crew-2026"

func newAuthService(store *memStore, clk *testClock) *AuthService {
	return NewAuthService(store, clk, "test-secret", time.Hour, testVolunteerCode)
}

func TestAuthRegisterLoginVerify(t *testing.T) {
	store := newMemStore()
	clk := newTestClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	svc := newAuthService(store, clk)

	userID, err := svc.Register(context.Background(), RegisterInput{
		Email:       "ana@example.com",
		Password:    "hunter22",
		DisplayName: "Ana",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, userID)

	result, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Equal(t, models.RoleUser, result.Role)
	assert.NotEmpty(t, result.Token)

	claims, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestAuthRegisterValidation(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store, newTestClock(time.Now()))

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing email", RegisterInput{Password: "x", DisplayName: "x"}},
		{"missing password", RegisterInput{Email: "a@b.c", DisplayName: "x"}},
		{"missing display name", RegisterInput{Email: "a@b.c", Password: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store, newTestClock(time.Now()))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "ana@example.com",
		Password:    "hunter22",
		DisplayName: "Ana",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:       "ana@example.com",
		Password:    "other",
		DisplayName: "Ana Again",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateAccount)
}

func TestAuthRegisterVolunteerAccessCode(t *testing.T) {
	store := newMemStore()
	clk := newTestClock(time.Now())
	svc := newAuthService(store, clk)

	volunteerID, err := svc.Register(context.Background(), RegisterInput{
		Email:       "vol@example.com",
		Password:    "pw",
		DisplayName: "Vol",
		AccessCode:  testVolunteerCode,
	})
	require.NoError(t, err)

	volunteer, err := store.UserByID(context.Background(), volunteerID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVolunteer, volunteer.Role.Name)

	// A wrong code silently falls back to the user role.
	plainID, err := svc.Register(context.Background(), RegisterInput{
		Email:       "plain@example.com",
		Password:    "pw",
		DisplayName: "Plain",
		AccessCode:  "nope",
	})
	require.NoError(t, err)

	plain, err := store.UserByID(context.Background(), plainID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, plain.Role.Name)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store, newTestClock(time.Now()))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "ana@example.com",
		Password:    "hunter22",
		DisplayName: "Ana",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestAuthVerifyTokenExpired(t *testing.T) {
	store := newMemStore()
	clk := newTestClock(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	svc := newAuthService(store, clk)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "ana@example.com",
		Password:    "hunter22",
		DisplayName: "Ana",
	})
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "ana@example.com", "hunter22")
	require.NoError(t, err)

	clk.Advance(time.Hour + time.Minute)
	_, err = svc.VerifyToken(result.Token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}

func TestAuthVerifyTokenTampered(t *testing.T) {
	store := newMemStore()
	clk := newTestClock(time.Now())
	svc := newAuthService(store, clk)

	_, err := svc.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	other := NewAuthService(store, clk, "other-secret", time.Hour, "")
	_, err = other.Register(context.Background(), RegisterInput{
		Email:       "ana@example.com",
		Password:    "pw",
		DisplayName: "Ana",
	})
	require.NoError(t, err)
	result, err := other.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)

	// Signed with a different secret.
	_, err = svc.VerifyToken(result.Token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)
}
