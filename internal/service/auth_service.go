package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/noobie-hq/noobie-api/internal/models"
	"github.com/noobie-hq/noobie-api/internal/repository"
)

// ErrInvalidCredentials indicates the email/password pair did not match an account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (models.User, error)
	IssueToken(user models.User) (string, time.Time, error)
}

type authService struct {
	users    repository.UserRepository
	secret   string
	tokenTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}

	return &authService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

func (s *authService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) IssueToken(user models.User) (string, time.Time, error) {
	expiresAt := s.now().Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   expiresAt.Unix(),
		"iat":   s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
