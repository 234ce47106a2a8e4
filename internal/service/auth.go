package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"renttrack-backend/internal/domain"
	"renttrack-backend/internal/repository"
	"renttrack-backend/internal/security"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Login verifies credentials and issues an access/refresh token pair. Unknown
// email and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", fmt.Errorf("invalid credentials: %w", domain.ErrDenied)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("invalid credentials: %w", domain.ErrDenied)
	}
	return s.issuePair(user.ID, user.Email)
}

// Refresh trades a valid refresh token for a fresh pair. The user is looked
// up again so a deleted account cannot keep refreshing.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("refresh: %w", domain.ErrDenied)
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", fmt.Errorf("refresh: %w", domain.ErrDenied)
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", fmt.Errorf("refresh: %w", domain.ErrDenied)
	}
	return s.issuePair(user.ID, user.Email)
}

func (s *authService) issuePair(userID int32, email string) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(userID, email)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID, email)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}
	return access, refresh, nil
}
