package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type Service struct {
	auth      *jwtauth.JWTAuth
	expiresIn time.Duration
}

func NewService(secret string, expiresIn time.Duration) *Service {
	return &Service{
		auth:      jwtauth.New("HS256", []byte(secret), nil, jwt.WithAcceptableSkew(30*time.Second)),
		expiresIn: expiresIn,
	}
}

// JWTAuth exposes the underlying verifier for the chi middleware.
func (s *Service) JWTAuth() *jwtauth.JWTAuth {
	return s.auth
}

func (s *Service) GenerateAccessToken(userID int64, email string, role user.Role) (string, error) {
	now := time.Now()
	claims := map[string]any{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiresIn).Unix(),
	}

	_, tokenString, err := s.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encoding access token: %w", err)
	}

	return tokenString, nil
}
