package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"barbershop/internal/availability"
	"barbershop/internal/domain"
	"barbershop/internal/repository"
	"barbershop/pkg/validator"
)

const (
	defaultOpenTime  = "08:00"
	defaultCloseTime = "21:00"
)

type ScheduleServiceImpl struct {
	repo        repository.ScheduleRepository
	blockedRepo repository.BlockedSlotRepository
	events      EventPublisher
	clock       Clock
	logger      *zap.Logger
}

func NewScheduleService(
	repo repository.ScheduleRepository,
	blockedRepo repository.BlockedSlotRepository,
	events EventPublisher,
	clock Clock,
	logger *zap.Logger,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		repo:        repo,
		blockedRepo: blockedRepo,
		events:      events,
		clock:       clock,
		logger:      logger,
	}
}

func (s *ScheduleServiceImpl) ListDays(ctx context.Context) ([]domain.DaySchedule, error) {
	days, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Error(err))
		return nil, err
	}

	return days, nil
}

func (s *ScheduleServiceImpl) UpdateDay(ctx context.Context, weekday int, dto domain.UpdateDayScheduleDTO) (*domain.DaySchedule, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: день недели должен быть от 0 до 6", domain.ErrValidation)
	}

	day, err := s.repo.GetByWeekday(ctx, weekday)
	if err != nil {
		s.logger.Error("ошибка получения дня расписания", zap.Int("weekday", weekday), zap.Error(err))
		return nil, err
	}
	if day == nil {
		day = &domain.DaySchedule{DayOfWeek: weekday, OpenTime: defaultOpenTime, CloseTime: defaultCloseTime}
	}

	if dto.IsOpen != nil {
		day.IsOpen = *dto.IsOpen
	}
	if dto.OpenTime != nil {
		day.OpenTime = *dto.OpenTime
	}
	if dto.CloseTime != nil {
		day.CloseTime = *dto.CloseTime
	}
	if dto.BreakStart != nil {
		day.BreakStart = emptyToNil(*dto.BreakStart)
	}
	if dto.BreakEnd != nil {
		day.BreakEnd = emptyToNil(*dto.BreakEnd)
	}
	if dto.ClearBreak {
		day.BreakStart, day.BreakEnd = nil, nil
	}

	if err := normalizeDay(day); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, *day); err != nil {
		s.logger.Error("ошибка обновления дня расписания", zap.Int("weekday", weekday), zap.Error(err))
		return nil, err
	}

	return day, nil
}

// normalizeDay validates the day and rewrites its times as HH:MM. Hour
// ordering is only enforced for open days so a day can be closed as is.
func normalizeDay(day *domain.DaySchedule) error {
	openMin, err := availability.ToMinutes(day.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: время открытия: %v", domain.ErrValidation, err)
	}
	closeMin, err := availability.ToMinutes(day.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: время закрытия: %v", domain.ErrValidation, err)
	}
	if day.IsOpen && openMin >= closeMin {
		return fmt.Errorf("%w: время открытия должно быть раньше закрытия", domain.ErrValidation)
	}
	day.OpenTime = availability.FormatMinutes(openMin)
	day.CloseTime = availability.FormatMinutes(closeMin)

	if (day.BreakStart == nil) != (day.BreakEnd == nil) {
		return fmt.Errorf("%w: перерыв задается началом и концом одновременно", domain.ErrValidation)
	}
	if day.BreakStart == nil {
		return nil
	}

	breakStart, err := availability.ToMinutes(*day.BreakStart)
	if err != nil {
		return fmt.Errorf("%w: начало перерыва: %v", domain.ErrValidation, err)
	}
	breakEnd, err := availability.ToMinutes(*day.BreakEnd)
	if err != nil {
		return fmt.Errorf("%w: конец перерыва: %v", domain.ErrValidation, err)
	}
	if day.IsOpen && (breakStart >= breakEnd || breakStart < openMin || breakEnd > closeMin) {
		return fmt.Errorf("%w: перерыв должен находиться внутри рабочего времени", domain.ErrValidation)
	}

	start, end := availability.FormatMinutes(breakStart), availability.FormatMinutes(breakEnd)
	day.BreakStart, day.BreakEnd = &start, &end

	return nil
}

func (s *ScheduleServiceImpl) ListBlocks(ctx context.Context, from string) ([]domain.BlockedSlot, error) {
	if from == "" {
		from = s.clock.Now().Format(validator.DateLayout)
	}
	if !validator.ValidateDate(from) {
		return nil, fmt.Errorf("%w: некорректная дата %q", domain.ErrValidation, from)
	}

	blocks, err := s.blockedRepo.ListFrom(ctx, from)
	if err != nil {
		s.logger.Error("ошибка получения блокировок", zap.String("from", from), zap.Error(err))
		return nil, err
	}

	return blocks, nil
}

func (s *ScheduleServiceImpl) CreateBlock(ctx context.Context, dto domain.CreateBlockedSlotDTO) (int64, error) {
	if !validator.ValidateDate(dto.BlockedDate) {
		return 0, fmt.Errorf("%w: некорректная дата %q", domain.ErrValidation, dto.BlockedDate)
	}
	if dto.BlockedDate < s.clock.Now().Format(validator.DateLayout) {
		return 0, fmt.Errorf("%w: нельзя заблокировать прошедшую дату", domain.ErrValidation)
	}

	block := domain.BlockedSlot{
		BlockedDate: dto.BlockedDate,
		FullDay:     dto.FullDay,
	}
	if dto.Reason != nil {
		block.Reason = emptyToNil(validator.SanitizeString(*dto.Reason))
	}

	if !dto.FullDay {
		if dto.BlockedTime == nil || strings.TrimSpace(*dto.BlockedTime) == "" {
			return 0, fmt.Errorf("%w: укажите время или блокировку на весь день", domain.ErrValidation)
		}
		m, err := availability.ToMinutes(*dto.BlockedTime)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		t := availability.FormatMinutes(m)
		block.BlockedTime = &t
	}

	id, err := s.blockedRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("ошибка создания блокировки", zap.String("date", block.BlockedDate), zap.Error(err))
		return 0, err
	}

	block.ID = id
	s.publish(block)

	return id, nil
}

func (s *ScheduleServiceImpl) DeleteBlock(ctx context.Context, id int64) error {
	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка удаления блокировки", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	s.publish(map[string]int64{"id": id})

	return nil
}

func (s *ScheduleServiceImpl) publish(payload interface{}) {
	s.events.Publish(domain.Event{
		Type:      domain.EventBlockedSlotsChanged,
		Payload:   payload,
		CreatedAt: s.clock.Now(),
	})
}

func emptyToNil(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
