package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/domain"
	"barbershop/pkg/auth"
)

func newAuthService(t *testing.T) (*AuthServiceImpl, *mockAuthRepo, *mockUserRepo) {
	t.Helper()
	authRepo := new(mockAuthRepo)
	userRepo := new(mockUserRepo)
	svc := NewAuthService(authRepo, userRepo, config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}, zap.NewNop())
	return svc, authRepo, userRepo
}

func adminUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &domain.User{ID: 12, Email: "dono@barbearia.com", PasswordHash: hash, Role: domain.UserRoleSuperAdmin}
}

func TestAuthService_LoginAndParse(t *testing.T) {
	ctx := context.Background()
	svc, authRepo, userRepo := newAuthService(t)
	user := adminUser(t, "segredo1")

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	authRepo.On("CreateSession", ctx, mock.MatchedBy(func(s domain.Session) bool {
		return s.UserID == 12 && s.RefreshToken != "" && s.UserAgent == "curl" && s.IP == "10.0.0.1" && s.ExpiresAt.After(s.CreatedAt)
	})).Return(nil).Once()

	tokens, err := svc.Login(ctx, domain.LoginRequest{Email: user.Email, Password: "segredo1"}, "curl", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	id, role, err := svc.ParseToken(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.Equal(t, domain.UserRoleSuperAdmin, role)

	_, _, err = svc.ParseToken(ctx, tokens.RefreshToken)
	assert.Error(t, err)
	authRepo.AssertExpectations(t)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, authRepo, userRepo := newAuthService(t)
	user := adminUser(t, "segredo1")

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	_, err := svc.Login(ctx, domain.LoginRequest{Email: user.Email, Password: "errado"}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	userRepo.On("GetByEmail", ctx, "ninguem@x.com").Return(nil, domain.ErrNotFound).Once()
	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ninguem@x.com", Password: "segredo1"}, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	authRepo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestAuthService_ParseTokenExpired(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newAuthService(t)

	issued := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	tokens, err := svc.generateTokens(1, domain.UserRoleAdmin)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(time.Hour) }
	_, _, err = svc.ParseToken(ctx, tokens.AccessToken)
	assert.Error(t, err)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the session", func(t *testing.T) {
		svc, authRepo, userRepo := newAuthService(t)
		session := &domain.Session{ID: "old", UserID: 12, RefreshToken: "r1", ExpiresAt: time.Now().Add(time.Hour)}

		authRepo.On("ConsumeSession", ctx, "r1").Return(session, nil).Once()
		userRepo.On("GetByID", ctx, int64(12)).Return(&domain.User{ID: 12, Role: domain.UserRoleAdmin}, nil).Once()
		authRepo.On("CreateSession", ctx, mock.MatchedBy(func(s domain.Session) bool {
			return s.ID != "old" && s.RefreshToken != "r1"
		})).Return(nil).Once()

		tokens, err := svc.RefreshTokens(ctx, "r1", "ua", "ip")
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.Equal(t, int64(900), tokens.ExpiresIn)
		authRepo.AssertExpectations(t)
	})

	t.Run("expired session is consumed and rejected", func(t *testing.T) {
		svc, authRepo, _ := newAuthService(t)
		session := &domain.Session{ID: "old", UserID: 12, ExpiresAt: time.Now().Add(-time.Minute)}

		authRepo.On("ConsumeSession", ctx, "r1").Return(session, nil).Once()

		_, err := svc.RefreshTokens(ctx, "r1", "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		authRepo.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, authRepo, _ := newAuthService(t)
		authRepo.On("ConsumeSession", ctx, "nope").Return(nil, domain.ErrNotFound).Once()

		_, err := svc.RefreshTokens(ctx, "nope", "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, authRepo, _ := newAuthService(t)

	authRepo.On("ConsumeSession", ctx, "r1").Return(&domain.Session{ID: "s1"}, nil).Once()
	require.NoError(t, svc.Logout(ctx, "r1"))

	authRepo.On("ConsumeSession", ctx, "gone").Return(nil, domain.ErrNotFound).Once()
	require.NoError(t, svc.Logout(ctx, "gone"))
	authRepo.AssertExpectations(t)
}
