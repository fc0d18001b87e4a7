package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"barbershop/internal/cache"
	"barbershop/internal/domain"
	"barbershop/internal/repository"
)

const defaultBufferMinutes = 5

type CatalogServiceImpl struct {
	repo   repository.ServiceRepository
	cache  *cache.Cache
	logger *zap.Logger
}

func NewCatalogService(repo repository.ServiceRepository, c *cache.Cache, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		repo:   repo,
		cache:  c,
		logger: logger,
	}
}

func (s *CatalogServiceImpl) ListActive(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if s.cache.Get(ctx, cache.KeyActiveServices, &services) {
		return services, nil
	}

	services, err := s.repo.List(ctx, true)
	if err != nil {
		s.logger.Error("ошибка получения списка услуг", zap.Error(err))
		return nil, err
	}

	s.cache.Set(ctx, cache.KeyActiveServices, services)

	return services, nil
}

func (s *CatalogServiceImpl) ListAll(ctx context.Context) ([]domain.Service, error) {
	services, err := s.repo.List(ctx, false)
	if err != nil {
		s.logger.Error("ошибка получения списка услуг", zap.Error(err))
		return nil, err
	}

	return services, nil
}

func (s *CatalogServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка получения услуги", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return service, nil
}

func (s *CatalogServiceImpl) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	service := domain.Service{
		Name:            strings.TrimSpace(dto.Name),
		Price:           dto.Price,
		DurationMinutes: dto.DurationMinutes,
		BufferMinutes:   defaultBufferMinutes,
		Active:          true,
		SortOrder:       dto.SortOrder,
	}
	if dto.BufferMinutes != nil {
		service.BufferMinutes = *dto.BufferMinutes
	}
	if dto.Active != nil {
		service.Active = *dto.Active
	}

	if err := validateService(service); err != nil {
		return 0, err
	}

	id, err := s.repo.Create(ctx, service)
	if err != nil {
		s.logger.Error("ошибка создания услуги", zap.String("name", service.Name), zap.Error(err))
		return 0, err
	}

	s.cache.Invalidate(ctx, cache.KeyActiveServices)

	return id, nil
}

func (s *CatalogServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	service, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if dto.Name != nil {
		service.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Price != nil {
		service.Price = *dto.Price
	}
	if dto.DurationMinutes != nil {
		service.DurationMinutes = *dto.DurationMinutes
	}
	if dto.BufferMinutes != nil {
		service.BufferMinutes = *dto.BufferMinutes
	}
	if dto.Active != nil {
		service.Active = *dto.Active
	}
	if dto.SortOrder != nil {
		service.SortOrder = *dto.SortOrder
	}

	if err := validateService(*service); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, *service); err != nil {
		s.logger.Error("ошибка обновления услуги", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, cache.KeyActiveServices)

	return nil
}

func (s *CatalogServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка удаления услуги", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	s.cache.Invalidate(ctx, cache.KeyActiveServices)

	return nil
}

func validateService(service domain.Service) error {
	switch {
	case service.Name == "":
		return fmt.Errorf("%w: название услуги не может быть пустым", domain.ErrValidation)
	case service.Price < 0:
		return fmt.Errorf("%w: цена не может быть отрицательной", domain.ErrValidation)
	case service.DurationMinutes <= 0:
		return fmt.Errorf("%w: длительность должна быть положительной", domain.ErrValidation)
	case service.BufferMinutes < 0:
		return fmt.Errorf("%w: буфер не может быть отрицательным", domain.ErrValidation)
	}
	return nil
}
