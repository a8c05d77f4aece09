package service

import (
	"context"
	"errors"
	"log/slog"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository"
	"rentdesk-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords, so a
// login probe cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	store  repository.Store
	tokens security.TokenManager
	log    *slog.Logger
}

func NewAuthService(store repository.Store, tokens security.TokenManager) AuthService {
	return &authService{
		store:  store,
		tokens: tokens,
		log:    logger.WithService("auth"),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.Validationf("email and password are required")
	}

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.log.Info("user logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.Users().GetByID(ctx, id)
}
