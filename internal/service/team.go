package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"barbershop/internal/domain"
	"barbershop/internal/repository"
	"barbershop/pkg/auth"
	"barbershop/pkg/validator"
)

type TeamServiceImpl struct {
	userRepo repository.UserRepository
	authRepo repository.AuthRepository
	logger   *zap.Logger
}

func NewTeamService(userRepo repository.UserRepository, authRepo repository.AuthRepository, logger *zap.Logger) *TeamServiceImpl {
	return &TeamServiceImpl{
		userRepo: userRepo,
		authRepo: authRepo,
		logger:   logger,
	}
}

func (s *TeamServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка администраторов", zap.Error(err))
		return nil, err
	}

	return users, nil
}

func (s *TeamServiceImpl) CreateAdmin(ctx context.Context, dto domain.CreateAdminDTO) (int64, error) {
	return s.create(ctx, dto.Email, dto.Password, domain.UserRoleAdmin)
}

func (s *TeamServiceImpl) create(ctx context.Context, email, password string, role domain.UserRole) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validator.ValidateEmail(email) {
		return 0, fmt.Errorf("%w: некорректный email", domain.ErrValidation)
	}
	if !validator.ValidatePassword(password) {
		return 0, fmt.Errorf("%w: пароль должен содержать не менее 6 символов", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return 0, err
	}

	id, err := s.userRepo.Create(ctx, domain.User{Email: email, PasswordHash: hash, Role: role})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return 0, fmt.Errorf("%w: пользователь с таким email уже существует", domain.ErrAlreadyExists)
		}
		s.logger.Error("ошибка создания администратора", zap.String("email", email), zap.Error(err))
		return 0, err
	}

	s.logger.Info("создан администратор", zap.Int64("id", id), zap.String("role", string(role)))

	return id, nil
}

// UpdatePassword sets a new password and ends every session of the user.
func (s *TeamServiceImpl) UpdatePassword(ctx context.Context, id int64, dto domain.UpdatePasswordDTO) error {
	if !validator.ValidatePassword(dto.Password) {
		return fmt.Errorf("%w: пароль должен содержать не менее 6 символов", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка обновления пароля", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	if err := s.authRepo.DeleteSessionsByUserID(ctx, id); err != nil {
		s.logger.Warn("не удалось завершить сессии пользователя", zap.Int64("id", id), zap.Error(err))
	}

	return nil
}

// Delete removes an admin account. Super admins and the caller's own account cannot be deleted.
func (s *TeamServiceImpl) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return fmt.Errorf("%w: нельзя удалить собственную учетную запись", domain.ErrForbidden)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == domain.UserRoleSuperAdmin {
		return fmt.Errorf("%w: нельзя удалить главного администратора", domain.ErrForbidden)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка удаления администратора", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	return nil
}

// EnsureSuperAdmin creates the first super admin from configuration when none exists.
func (s *TeamServiceImpl) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.userRepo.CountByRole(ctx, domain.UserRoleSuperAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.create(ctx, email, password, domain.UserRoleSuperAdmin)
	if errors.Is(err, domain.ErrAlreadyExists) {
		s.logger.Warn("пользователь для главного администратора уже существует", zap.String("email", email))
		return nil
	}

	return err
}
