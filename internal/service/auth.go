// Package service provides the backend business logic, delegating
// persistence to the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
)

// Sentinel errors surfaced as 4xx responses by the HTTP layer.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation failed")
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u repository.UserRecord) error
	ByEmail(ctx context.Context, email string) (repository.UserRecord, error)
	ProfileByID(ctx context.Context, userID string) (repository.UserRecord, error)
	UpdateProfile(ctx context.Context, userID string, p models.ProfileData) error
	Count(ctx context.Context) (int, error)
}

// AuthService implements registration, login and profile operations.
type AuthService struct {
	repo      UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService constructs an AuthService signing tokens with secret.
func NewAuthService(repo UserRepository, secret string) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: []byte(secret),
		tokenTTL:  24 * time.Hour,
	}
}

// Register creates an account and returns its display projection plus
// a fresh session token.
func (s *AuthService) Register(ctx context.Context, name, email, password, phone string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return models.User{}, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return models.User{}, "", err
	}
	if exists {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", fmt.Errorf("hash password: %w", err)
	}
	rec := repository.UserRecord{
		ID:           uuid.NewString(),
		Name:         displayName(name, email),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(phone),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return models.User{}, "", err
	}
	token, err := s.issueToken(rec)
	if err != nil {
		return models.User{}, "", err
	}
	return models.User{Name: rec.Name, Email: rec.Email}, token, nil
}

// Login authenticates credentials and returns the display projection
// plus a fresh session token. Whether the email exists is not
// revealed: both unknown email and wrong password yield
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rec, err := s.repo.ByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(rec)
	if err != nil {
		return models.User{}, "", err
	}
	return models.User{Name: rec.Name, Email: rec.Email}, token, nil
}

// Profile loads a user's shipping profile.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.ProfileData, error) {
	rec, err := s.repo.ProfileByID(ctx, userID)
	if err != nil {
		return models.ProfileData{}, err
	}
	return rec.Profile, nil
}

// UpdateProfile writes a user's shipping profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, p models.ProfileData) error {
	return s.repo.UpdateProfile(ctx, userID, p)
}

func (s *AuthService) issueToken(rec repository.UserRecord) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": rec.ID,
		"email":   rec.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func displayName(name, email string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "User"
}
