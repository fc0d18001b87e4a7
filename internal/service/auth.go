package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/domain"
	"barbershop/internal/repository"
	"barbershop/pkg/auth"
)

const refreshTokenBytes = 32

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID int64           `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

type AuthServiceImpl struct {
	authRepo  repository.AuthRepository
	userRepo  repository.UserRepository
	jwtConfig config.JWTConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewAuthService(authRepo repository.AuthRepository, userRepo repository.UserRepository, jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		authRepo:  authRepo,
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	user, err := s.userRepo.GetByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("попытка входа с неизвестным email", zap.String("email", dto.Email))
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error("ошибка получения пользователя", zap.Error(err))
		return nil, err
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("ошибка проверки пароля", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		s.logger.Warn("неверный пароль", zap.Int64("userId", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(dto.Password); err == nil {
			if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
				s.logger.Warn("не удалось обновить хеш пароля", zap.Int64("userId", user.ID), zap.Error(err))
			}
		}
	}

	return s.startSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	session, err := s.authRepo.ConsumeSession(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: недействительный refresh token", domain.ErrInvalidCredentials)
		}
		s.logger.Error("ошибка получения сессии", zap.Error(err))
		return nil, err
	}

	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w: refresh token истек", domain.ErrInvalidCredentials)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: пользователь не найден", domain.ErrInvalidCredentials)
		}
		s.logger.Error("ошибка получения пользователя", zap.Int64("userId", session.UserID), zap.Error(err))
		return nil, err
	}

	return s.startSession(ctx, user, userAgent, ip)
}

func (s *AuthServiceImpl) startSession(ctx context.Context, user *domain.User, userAgent, ip string) (*domain.Tokens, error) {
	tokens, err := s.generateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("ошибка генерации токенов", zap.Error(err))
		return nil, err
	}

	now := s.now()
	session := domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    now.Add(s.jwtConfig.RefreshTokenTTL),
		CreatedAt:    now,
	}

	if err := s.authRepo.CreateSession(ctx, session); err != nil {
		s.logger.Error("ошибка сохранения сессии", zap.Error(err))
		return nil, err
	}

	return tokens, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.authRepo.ConsumeSession(ctx, refreshToken); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("сессия не найдена при выходе")
			return nil
		}
		s.logger.Error("ошибка удаления сессии", zap.Error(err))
		return err
	}

	return nil
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, tokenString string) (int64, domain.UserRole, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, "", fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("недействительный токен")
	}

	return claims.UserID, claims.Role, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка получения пользователя", zap.Int64("userId", userID), zap.Error(err))
		}
		return nil, err
	}

	return user, nil
}

// generateTokens signs a short-lived JWT access token and issues an opaque
// refresh token that is only valid while its session row exists.
func (s *AuthServiceImpl) generateTokens(userID int64, role domain.UserRole) (*domain.Tokens, error) {
	now := s.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Role:   role,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи access token: %w", err)
	}

	refreshToken, err := auth.GenerateRandomToken(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации refresh token: %w", err)
	}

	return &domain.Tokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}
