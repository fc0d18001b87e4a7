package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"barbershop/internal/availability"
	"barbershop/internal/cache"
	"barbershop/internal/domain"
	"barbershop/internal/repository"
	"barbershop/internal/storage"
	"barbershop/pkg/colorconv"
	"barbershop/pkg/validator"
)

const (
	maxBusinessNameLength = 100
	minSlotInterval       = 5
	maxSlotInterval       = 240
)

type SettingsServiceImpl struct {
	repo            repository.SettingsRepository
	fileStorage     storage.FileStorage
	cache           *cache.Cache
	defaultInterval int
	logger          *zap.Logger
}

func NewSettingsService(
	repo repository.SettingsRepository,
	fileStorage storage.FileStorage,
	c *cache.Cache,
	defaultInterval int,
	logger *zap.Logger,
) *SettingsServiceImpl {
	if defaultInterval <= 0 {
		defaultInterval = domain.DefaultSlotInterval
	}

	return &SettingsServiceImpl{
		repo:            repo,
		fileStorage:     fileStorage,
		cache:           c,
		defaultInterval: defaultInterval,
		logger:          logger,
	}
}

func (s *SettingsServiceImpl) Public(ctx context.Context) (*domain.PublicSettings, error) {
	var cached domain.PublicSettings
	if s.cache.Get(ctx, cache.KeyPublicSettings, &cached) {
		return &cached, nil
	}

	values, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ошибка получения настроек", zap.Error(err))
		return nil, err
	}

	interval, err := s.parseInterval(values[domain.SettingSlotInterval])
	if err != nil {
		s.logger.Error("некорректный интервал слотов в настройках", zap.Error(err))
		return nil, err
	}

	settings := &domain.PublicSettings{
		BusinessName:        values[domain.SettingBusinessName],
		SlotIntervalMinutes: interval,
		Appearance: domain.Appearance{
			PrimaryColor:    values[domain.SettingPrimaryColor],
			BackgroundColor: values[domain.SettingBackgroundColor],
			FontFamily:      values[domain.SettingFontFamily],
			TitleBold:       values[domain.SettingTitleBold] == "true",
			TitleItalic:     values[domain.SettingTitleItalic] == "true",
		},
		LogoImage:       values[domain.SettingLogoImage],
		BackgroundImage: values[domain.SettingBackgroundImage],
	}
	if settings.BusinessName == "" {
		settings.BusinessName = domain.DefaultBusinessName
	}

	s.cache.Set(ctx, cache.KeyPublicSettings, settings)

	return settings, nil
}

func (s *SettingsServiceImpl) All(ctx context.Context) (map[string]string, error) {
	values, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ошибка получения настроек", zap.Error(err))
		return nil, err
	}

	return values, nil
}

// SlotInterval returns the booking grid step. A stored value that is not a
// positive integer is a configuration error, never silently replaced.
func (s *SettingsServiceImpl) SlotInterval(ctx context.Context) (int, error) {
	var interval int
	if s.cache.Get(ctx, cache.KeySlotInterval, &interval) {
		return interval, nil
	}

	raw, _, err := s.repo.Get(ctx, domain.SettingSlotInterval)
	if err != nil {
		s.logger.Error("ошибка получения интервала слотов", zap.Error(err))
		return 0, err
	}

	interval, err = s.parseInterval(raw)
	if err != nil {
		return 0, err
	}

	s.cache.Set(ctx, cache.KeySlotInterval, interval)

	return interval, nil
}

func (s *SettingsServiceImpl) parseInterval(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.defaultInterval, nil
	}

	interval, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &availability.ConfigError{Field: domain.SettingSlotInterval, Reason: "значение не является числом", Err: err}
	}
	if interval <= 0 {
		return 0, &availability.ConfigError{Field: domain.SettingSlotInterval, Reason: "интервал должен быть положительным"}
	}

	return interval, nil
}

func (s *SettingsServiceImpl) UpdateBusinessName(ctx context.Context, dto domain.UpdateBusinessNameDTO) error {
	name := validator.SanitizeString(dto.BusinessName)
	if name == "" || utf8.RuneCountInString(name) > maxBusinessNameLength {
		return fmt.Errorf("%w: название должно содержать от 1 до %d символов", domain.ErrValidation, maxBusinessNameLength)
	}

	return s.save(ctx, map[string]string{domain.SettingBusinessName: name}, cache.KeyPublicSettings)
}

func (s *SettingsServiceImpl) UpdateSlotInterval(ctx context.Context, dto domain.UpdateSlotIntervalDTO) error {
	if dto.Minutes < minSlotInterval || dto.Minutes > maxSlotInterval {
		return fmt.Errorf("%w: интервал должен быть от %d до %d минут", domain.ErrValidation, minSlotInterval, maxSlotInterval)
	}

	return s.save(ctx,
		map[string]string{domain.SettingSlotInterval: strconv.Itoa(dto.Minutes)},
		cache.KeyPublicSettings, cache.KeySlotInterval,
	)
}

func (s *SettingsServiceImpl) UpdateAppearance(ctx context.Context, dto domain.UpdateAppearanceDTO) error {
	values := make(map[string]string)

	colors := []struct {
		key   string
		value *string
	}{
		{domain.SettingPrimaryColor, dto.PrimaryColor},
		{domain.SettingBackgroundColor, dto.BackgroundColor},
	}
	for _, c := range colors {
		if c.value == nil {
			continue
		}
		if !validator.ValidateHexColor(*c.value) {
			return fmt.Errorf("%w: некорректный цвет %q", domain.ErrValidation, *c.value)
		}
		hsl, err := colorconv.HexToHSL(*c.value)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		values[c.key] = hsl
	}

	if dto.FontFamily != nil {
		if !slices.Contains(domain.AllowedFonts, *dto.FontFamily) {
			return fmt.Errorf("%w: шрифт %q не поддерживается", domain.ErrValidation, *dto.FontFamily)
		}
		values[domain.SettingFontFamily] = *dto.FontFamily
	}
	if dto.TitleBold != nil {
		values[domain.SettingTitleBold] = strconv.FormatBool(*dto.TitleBold)
	}
	if dto.TitleItalic != nil {
		values[domain.SettingTitleItalic] = strconv.FormatBool(*dto.TitleItalic)
	}

	if len(values) == 0 {
		return fmt.Errorf("%w: нет изменений", domain.ErrValidation)
	}

	return s.save(ctx, values, cache.KeyPublicSettings)
}

func (s *SettingsServiceImpl) UploadImage(ctx context.Context, kind domain.ImageKind, data []byte, filename string) (string, error) {
	if s.fileStorage == nil {
		return "", domain.ErrStorageDisabled
	}

	key, ok := kind.SettingKey()
	if !ok {
		return "", fmt.Errorf("%w: неизвестный тип изображения %q", domain.ErrValidation, kind)
	}

	previous, _, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Error("ошибка получения настройки изображения", zap.String("key", key), zap.Error(err))
		return "", err
	}

	url, err := s.fileStorage.UploadFile(ctx, data, filename, string(kind))
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrNotAnImage) || errors.Is(err, storage.ErrFileTooLarge) {
			return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		s.logger.Error("ошибка загрузки изображения", zap.String("kind", string(kind)), zap.Error(err))
		return "", err
	}

	if err := s.save(ctx, map[string]string{key: url}, cache.KeyPublicSettings); err != nil {
		return "", err
	}

	s.removeFile(ctx, previous)

	return url, nil
}

func (s *SettingsServiceImpl) ClearImage(ctx context.Context, kind domain.ImageKind) error {
	key, ok := kind.SettingKey()
	if !ok {
		return fmt.Errorf("%w: неизвестный тип изображения %q", domain.ErrValidation, kind)
	}

	previous, found, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Error("ошибка получения настройки изображения", zap.String("key", key), zap.Error(err))
		return err
	}
	if !found {
		return nil
	}

	if err := s.repo.Delete(ctx, key); err != nil {
		s.logger.Error("ошибка удаления настройки изображения", zap.String("key", key), zap.Error(err))
		return err
	}
	s.cache.Invalidate(ctx, cache.KeyPublicSettings)

	s.removeFile(ctx, previous)

	return nil
}

func (s *SettingsServiceImpl) save(ctx context.Context, values map[string]string, invalidate ...string) error {
	if err := s.repo.Set(ctx, values); err != nil {
		s.logger.Error("ошибка сохранения настроек", zap.Error(err))
		return err
	}

	s.cache.Invalidate(ctx, invalidate...)

	return nil
}

func (s *SettingsServiceImpl) removeFile(ctx context.Context, url string) {
	if url == "" || s.fileStorage == nil {
		return
	}

	if err := s.fileStorage.DeleteFile(ctx, url); err != nil {
		s.logger.Warn("не удалось удалить старое изображение", zap.String("url", url), zap.Error(err))
	}
}
