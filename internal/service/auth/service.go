package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
)

type service struct {
	userRepo user.UserRepository
	jwt      *jwt.Service
}

func NewService(userRepo user.UserRepository, jwtService *jwt.Service) auth.AuthService {
	return &service{
		userRepo: userRepo,
		jwt:      jwtService,
	}
}

func (s *service) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if account.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(account.ID, account.Email, account.Role)
	if err != nil {
		slog.Error("failed to generate access token", "user_id", account.ID, "error", err)
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{Token: token}, nil
}
