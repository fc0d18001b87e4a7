package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/availability"
	"barbershop/internal/domain"
	"barbershop/internal/metrics"
	"barbershop/internal/repository"
	"barbershop/pkg/validator"
)

type slotIntervalSource interface {
	SlotInterval(ctx context.Context) (int, error)
}

type AvailabilityServiceImpl struct {
	serviceRepo     repository.ServiceRepository
	scheduleRepo    repository.ScheduleRepository
	appointmentRepo repository.AppointmentRepository
	blockedRepo     repository.BlockedSlotRepository
	intervals       slotIntervalSource
	clock           Clock
	shop            config.ShopConfig
	metrics         *metrics.Metrics
	logger          *zap.Logger
}

func NewAvailabilityService(
	serviceRepo repository.ServiceRepository,
	scheduleRepo repository.ScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	blockedRepo repository.BlockedSlotRepository,
	intervals slotIntervalSource,
	clock Clock,
	shop config.ShopConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		serviceRepo:     serviceRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		blockedRepo:     blockedRepo,
		intervals:       intervals,
		clock:           clock,
		shop:            shop,
		metrics:         m,
		logger:          logger,
	}
}

// dayPlan is everything about a date that does not change while a booking is written.
type dayPlan struct {
	date     time.Time
	services []domain.Service
	schedule *domain.DaySchedule
	interval int
}

func (s *AvailabilityServiceImpl) GetSlots(ctx context.Context, date string, serviceIDs []int64) ([]availability.Slot, error) {
	started := time.Now()

	plan, err := s.plan(ctx, date, serviceIDs)
	if err != nil {
		return nil, err
	}

	var state repository.DayState
	if plan.schedule != nil && plan.schedule.IsOpen {
		state.Appointments, err = s.appointmentRepo.ListOccupying(ctx, date)
		if err != nil {
			s.logger.Error("ошибка получения записей на дату", zap.String("date", date), zap.Error(err))
			return nil, err
		}

		state.Blocks, err = s.blockedRepo.ListByDate(ctx, date)
		if err != nil {
			s.logger.Error("ошибка получения блокировок на дату", zap.String("date", date), zap.Error(err))
			return nil, err
		}
	}

	slots, err := s.resolve(plan, state)
	if err != nil {
		s.logger.Error("ошибка расчета свободного времени", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SlotQueryDuration.Observe(time.Since(started).Seconds())
	}

	return slots, nil
}

// plan validates the query and loads the weekday schedule and the slot interval.
func (s *AvailabilityServiceImpl) plan(ctx context.Context, date string, serviceIDs []int64) (*dayPlan, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	services, err := s.selection(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetByWeekday(ctx, int(day.Weekday()))
	if err != nil {
		s.logger.Error("ошибка получения расписания дня", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	interval, err := s.intervals.SlotInterval(ctx)
	if err != nil {
		return nil, err
	}

	return &dayPlan{date: day, services: services, schedule: schedule, interval: interval}, nil
}

func (s *AvailabilityServiceImpl) resolve(plan *dayPlan, state repository.DayState) ([]availability.Slot, error) {
	return availability.Resolve(availability.Request{
		Date:            plan.date,
		Services:        plan.services,
		Schedule:        plan.schedule,
		Appointments:    state.Appointments,
		Blocks:          state.Blocks,
		IntervalMinutes: plan.interval,
		Now:             s.clock.Now(),
		BufferInBreak:   s.shop.BufferInBreak,
	})
}

// selection loads the requested services. Every id must exist and be active.
func (s *AvailabilityServiceImpl) selection(ctx context.Context, serviceIDs []int64) ([]domain.Service, error) {
	ids := slices.Clone(serviceIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		return nil, availability.ErrNoServices
	}

	services, err := s.serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("ошибка получения выбранных услуг", zap.Int64s("ids", ids), zap.Error(err))
		return nil, err
	}

	if len(services) != len(ids) {
		return nil, fmt.Errorf("%w: выбранная услуга не найдена", domain.ErrValidation)
	}
	for _, svc := range services {
		if !svc.Active {
			return nil, fmt.Errorf("%w: услуга %q недоступна для записи", domain.ErrValidation, svc.Name)
		}
	}

	return services, nil
}

func (s *AvailabilityServiceImpl) parseDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(validator.DateLayout, date, s.location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: некорректная дата %q", domain.ErrValidation, date)
	}
	return day, nil
}

func (s *AvailabilityServiceImpl) location() *time.Location {
	if s.shop.Location != nil {
		return s.shop.Location
	}
	return time.UTC
}

func (s *AvailabilityServiceImpl) GetCalendar(ctx context.Context, from, to string, serviceIDs []int64) ([]domain.CalendarDay, error) {
	start, err := s.parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDate(to)
	if err != nil {
		return nil, err
	}

	if end.Before(start) {
		return nil, fmt.Errorf("%w: конец периода раньше начала", domain.ErrValidation)
	}
	days := int(math.Round(end.Sub(start).Hours()/24)) + 1
	if s.shop.CalendarMaxDays > 0 && days > s.shop.CalendarMaxDays {
		return nil, fmt.Errorf("%w: период не может превышать %d дней", domain.ErrValidation, s.shop.CalendarMaxDays)
	}

	services, err := s.selection(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	duration, _ := availability.Totals(services)

	schedules, err := s.scheduleRepo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Error(err))
		return nil, err
	}
	byWeekday := make(map[int]*domain.DaySchedule, len(schedules))
	for i := range schedules {
		byWeekday[schedules[i].DayOfWeek] = &schedules[i]
	}

	blocks, err := s.blockedRepo.ListBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("ошибка получения блокировок", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}
	fullDay := make(map[string]bool)
	for _, b := range blocks {
		if b.CoversWholeDay() {
			fullDay[b.BlockedDate] = true
		}
	}

	today := s.clock.Now().Format(validator.DateLayout)
	calendar := make([]domain.CalendarDay, 0, days)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(validator.DateLayout)
		day := domain.CalendarDay{Date: date}

		fits, err := availability.FitsInDay(byWeekday[int(d.Weekday())], duration)
		if err != nil {
			s.logger.Error("некорректное расписание дня", zap.String("date", date), zap.Error(err))
			return nil, err
		}

		switch {
		case date < today:
			day.Reason = domain.CalendarReasonPast
		case byWeekday[int(d.Weekday())] == nil || !byWeekday[int(d.Weekday())].IsOpen:
			day.Reason = domain.CalendarReasonClosed
		case fullDay[date]:
			day.Reason = domain.CalendarReasonFullDay
		case !fits:
			day.Reason = domain.CalendarReasonTooLong
		default:
			day.Selectable = true
		}

		calendar = append(calendar, day)
	}

	return calendar, nil
}
