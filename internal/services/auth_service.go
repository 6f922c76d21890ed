package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"boutique/internal/models"
	"boutique/internal/repositories"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the request shape for user registration.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the request shape for user and admin login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput carries the user-editable profile fields.
type ProfileInput struct {
	Name         string `json:"name" validate:"required,min=1,max=120"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// AuthService handles authentication for customers and the single admin
// identity configured through the environment.
type AuthService struct {
	store         repositories.Store
	jwtSecret     []byte
	tokenDuration time.Duration
	adminEmail    string
	adminPassHash string
	fbAuth        *firebaseauth.Client // nil when Google sign-in is not configured
}

// NewAuthService creates a new AuthService. fbAuth may be nil.
func NewAuthService(store repositories.Store, jwtSecret, adminEmail, adminPassHash string, fbAuth *firebaseauth.Client) *AuthService {
	return &AuthService{
		store:         store,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
		adminEmail:    adminEmail,
		adminPassHash: adminPassHash,
		fbAuth:        fbAuth,
	}
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	now := time.Now()
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(s.tokenDuration).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) userToken(user *models.User) (string, error) {
	return s.signToken(jwt.MapClaims{
		"user_id": user.ID,
		"role":    "user",
	})
}

// RegisterUser registers a new customer and returns the account with a
// fresh token.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if existing, err := s.store.Users().GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, "", validationError("email '%s' already registered", in.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.userToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginUser authenticates a customer by email and returns a token. The
// error never reveals whether the email exists.
func (s *AuthService) LoginUser(ctx context.Context, in LoginInput) (*models.User, string, error) {
	user, err := s.store.Users().GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", unauthorizedError("invalid credentials")
	}
	if user.Password == "" {
		// Provider-only account; no password to compare.
		return nil, "", unauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, "", unauthorizedError("invalid credentials")
	}

	token, err := s.userToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GoogleSignIn verifies a Firebase ID token and signs the matching account
// in, creating a password-less account on first use.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken string) (*models.User, string, error) {
	if s.fbAuth == nil {
		return nil, "", validationError("google sign-in is not configured")
	}
	decoded, err := s.fbAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, "", unauthorizedError("invalid google token")
	}
	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return nil, "", unauthorizedError("google token has no email")
	}
	name, _ := decoded.Claims["name"].(string)

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, "", err
		}
		user = &models.User{Name: name, Email: email}
		if user.Name == "" {
			user.Name = email
		}
		if err := s.store.Users().Create(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.userToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateProfile updates the authenticated user's contact details.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = in.Name
	user.Phone = in.Phone
	user.AddressLine1 = in.AddressLine1
	user.AddressLine2 = in.AddressLine2
	user.City = in.City
	user.State = in.State
	user.PostalCode = in.PostalCode
	user.Country = in.Country
	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users().GetByID(ctx, id)
}

// GetAllUsers retrieves every user, for the admin panel.
func (s *AuthService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.store.Users().GetAll(ctx)
}

// AdminLogin authenticates the single admin identity configured through
// ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
func (s *AuthService) AdminLogin(in LoginInput) (string, error) {
	if s.adminPassHash == "" {
		return "", unauthorizedError("admin login is not configured")
	}
	if in.Email != s.adminEmail {
		return "", unauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPassHash), []byte(in.Password)); err != nil {
		return "", unauthorizedError("invalid credentials")
	}
	return s.signToken(jwt.MapClaims{
		"email": s.adminEmail,
		"role":  "admin",
	})
}

// AdminEmail exposes the configured admin identity for /admin/me.
func (s *AuthService) AdminEmail() string {
	return s.adminEmail
}

// ValidateToken parses and validates a JWT, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, unauthorizedError("invalid token")
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, unauthorizedError("invalid token")
}
