package services_test

import (
	"context"
	"errors"
	"testing"

	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return services.NewAuthService(newTestStore(t), "test_jwt_secret", "admin@example.com", string(hash), nil)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, token, err := svc.RegisterUser(ctx, services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, float64(user.ID), claims["user_id"])

	loggedIn, loginToken, err := svc.LoginUser(ctx, services.LoginInput{
		Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.RegisterUser(ctx, services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, _, err = svc.RegisterUser(ctx, services.RegisterInput{
		Name: "Imposter", Email: "ada@example.com", Password: "other",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrValidation))
	assert.Contains(t, err.Error(), "already registered")
}

func TestLogin_Failures(t *testing.T) {
	store := newTestStore(t)
	svc := services.NewAuthService(store, "test_jwt_secret", "admin@example.com", "", nil)
	ctx := context.Background()

	_, _, err := svc.RegisterUser(ctx, services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, _, wrongPass := svc.LoginUser(ctx, services.LoginInput{Email: "ada@example.com", Password: "nope"})
	_, _, unknown := svc.LoginUser(ctx, services.LoginInput{Email: "ghost@example.com", Password: "nope"})
	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
	assert.True(t, errors.Is(wrongPass, services.ErrUnauthorized))

	// Accounts without a password hash cannot use password login.
	require.NoError(t, store.Users().Create(ctx, &models.User{Name: "Guest", Email: "guest@example.com"}))
	_, _, err = svc.LoginUser(ctx, services.LoginInput{Email: "guest@example.com", Password: "anything"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrUnauthorized))
}

func TestAdminLogin(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.AdminLogin(services.LoginInput{Email: "admin@example.com", Password: "admin-secret"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "admin@example.com", claims["email"])

	_, err = svc.AdminLogin(services.LoginInput{Email: "admin@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, services.ErrUnauthorized))

	_, err = svc.AdminLogin(services.LoginInput{Email: "user@example.com", Password: "admin-secret"})
	assert.True(t, errors.Is(err, services.ErrUnauthorized))
}

func TestAdminLogin_Unconfigured(t *testing.T) {
	svc := services.NewAuthService(newTestStore(t), "test_jwt_secret", "admin@example.com", "", nil)

	_, err := svc.AdminLogin(services.LoginInput{Email: "admin@example.com", Password: "anything"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrUnauthorized))
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	svc := newAuthService(t)
	other := services.NewAuthService(newTestStore(t), "different_secret", "admin@example.com", "", nil)

	_, token, err := svc.RegisterUser(context.Background(), services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrUnauthorized))

	_, err = svc.ValidateToken("not-a-token")
	require.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.RegisterUser(ctx, services.RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, services.ProfileInput{
		Name: "Ada Lovelace", Phone: "+1555", AddressLine1: "12 Analytical Way",
		City: "London", PostalCode: "EC1", Country: "UK",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "London", updated.City)

	// Email is not profile-editable and stays put.
	assert.Equal(t, "ada@example.com", updated.Email)
}
