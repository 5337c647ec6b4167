package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
)

const testSecret = "test-secret-key-for-jwt"

// fakeUserRepo serves a fixed set of users keyed by email.
type fakeUserRepo struct {
	user.UserRepository
	usersByEmail map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestService(users ...user.User) auth.AuthService {
	byEmail := make(map[string]user.User)
	for _, u := range users {
		byEmail[u.Email] = u
	}
	jwtService := jwt.NewService(testSecret, time.Hour)
	return NewService(&fakeUserRepo{usersByEmail: byEmail}, jwtService)
}

func testUser(t *testing.T, email, password string) user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashString := string(hash)

	return user.User{
		ID:           2,
		Email:        email,
		PasswordHash: &hashString,
		Role:         user.RoleAdmin,
		Active:       true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return a token", func(t *testing.T) {
		svc := newTestService(testUser(t, "admin@example.com", "password123"))

		result, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "admin@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		svc := newTestService(testUser(t, "admin@example.com", "password123"))

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected with the same error", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("account without a password cannot log in", func(t *testing.T) {
		account := testUser(t, "sso@example.com", "password123")
		account.PasswordHash = nil
		svc := newTestService(account)

		_, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "sso@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}
