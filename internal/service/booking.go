package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/availability"
	"barbershop/internal/domain"
	"barbershop/internal/metrics"
	"barbershop/internal/report"
	"barbershop/internal/repository"
	"barbershop/pkg/validator"
	"barbershop/pkg/whatsapp"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

var paymentLabels = map[domain.PaymentMethod]string{
	domain.PaymentMethodPix:  "Pix",
	domain.PaymentMethodCash: "Dinheiro",
}

type BookingServiceImpl struct {
	repo         repository.AppointmentRepository
	serviceRepo  repository.ServiceRepository
	availability *AvailabilityServiceImpl
	events       EventPublisher
	clock        Clock
	shop         config.ShopConfig
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewBookingService(
	repo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	availabilitySvc *AvailabilityServiceImpl,
	events EventPublisher,
	clock Clock,
	shop config.ShopConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		repo:         repo,
		serviceRepo:  serviceRepo,
		availability: availabilitySvc,
		events:       events,
		clock:        clock,
		shop:         shop,
		metrics:      m,
		logger:       logger,
	}
}

// Book creates a pending appointment. The requested time is re-resolved under
// the per-date lock held by the repository, so two clients cannot take the same slot.
func (s *BookingServiceImpl) Book(ctx context.Context, dto domain.CreateBookingDTO) (*domain.BookingResult, error) {
	appointment, plan, err := s.prepareBooking(ctx, dto)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, availability.ErrNoServices) {
			s.count(metrics.BookingRejected)
		} else {
			s.count(metrics.BookingFailed)
		}
		return nil, err
	}

	id, err := s.repo.CreateChecked(ctx, *appointment, func(state repository.DayState) error {
		slots, err := s.availability.resolve(plan, state)
		if err != nil {
			return err
		}
		for _, slot := range slots {
			if slot.Time == appointment.AppointmentTime {
				if slot.Available {
					return nil
				}
				break
			}
		}
		return domain.ErrSlotUnavailable
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			s.count(metrics.BookingConflict)
			s.logger.Info("попытка записи на занятое время",
				zap.String("date", appointment.AppointmentDate), zap.String("time", appointment.AppointmentTime))
			return nil, err
		}
		s.count(metrics.BookingFailed)
		s.logger.Error("ошибка создания записи", zap.String("date", appointment.AppointmentDate), zap.Error(err))
		return nil, err
	}

	s.count(metrics.BookingCreated)

	created, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения созданной записи", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	s.publish(domain.EventAppointmentCreated, created)

	names := make([]string, 0, len(plan.services))
	for _, svc := range plan.services {
		names = append(names, svc.Name)
	}

	return &domain.BookingResult{
		Appointment: created,
		WhatsAppLink: whatsapp.ConfirmationLink(s.shop.WhatsAppNumber, whatsapp.BookingDetails{
			ClientName: created.ClientName,
			Services:   names,
			Date:       created.AppointmentDate,
			Time:       created.AppointmentTime,
			Price:      created.Price,
			Payment:    paymentLabels[created.PaymentMethod],
		}),
	}, nil
}

func (s *BookingServiceImpl) prepareBooking(ctx context.Context, dto domain.CreateBookingDTO) (*domain.Appointment, *dayPlan, error) {
	name := validator.FormatName(validator.SanitizeString(dto.ClientName))
	if !validator.ValidateClientName(name) {
		return nil, nil, fmt.Errorf("%w: некорректное имя клиента", domain.ErrValidation)
	}

	if !validator.ValidatePhone(dto.ClientPhone) {
		return nil, nil, fmt.Errorf("%w: некорректный номер телефона", domain.ErrValidation)
	}

	if _, ok := paymentLabels[dto.PaymentMethod]; !ok {
		return nil, nil, fmt.Errorf("%w: неизвестный способ оплаты %q", domain.ErrValidation, dto.PaymentMethod)
	}

	startMin, err := availability.ToMinutes(dto.Time)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	plan, err := s.availability.plan(ctx, dto.Date, dto.ServiceIDs)
	if err != nil {
		return nil, nil, err
	}

	duration, buffer := availability.Totals(plan.services)

	var price float64
	names := make([]string, 0, len(plan.services))
	ids := make([]int64, 0, len(plan.services))
	for _, svc := range plan.services {
		price += svc.Price
		names = append(names, svc.Name)
		ids = append(ids, svc.ID)
	}

	return &domain.Appointment{
		ClientName:         name,
		ClientPhone:        validator.DigitsOnly(dto.ClientPhone),
		AppointmentDate:    plan.date.Format(validator.DateLayout),
		AppointmentTime:    availability.FormatMinutes(startMin),
		Status:             domain.AppointmentStatusPending,
		PaymentMethod:      dto.PaymentMethod,
		Price:              price,
		ServiceDescription: strings.Join(names, " + "),
		DurationMinutes:    duration,
		BufferMinutes:      buffer,
		ServiceIDs:         ids,
	}, plan, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}

	return appointment, nil
}

func (s *BookingServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	for _, d := range []*string{filter.Date, filter.StartDate, filter.EndDate} {
		if d != nil && !validator.ValidateDate(*d) {
			return nil, 0, fmt.Errorf("%w: некорректная дата %q", domain.ErrValidation, *d)
		}
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, fmt.Errorf("%w: неизвестный статус %q", domain.ErrValidation, *filter.Status)
	}

	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return nil, 0, err
	}

	return appointments, total, nil
}

// UpdateStatus moves an appointment through its lifecycle. Finishing on the
// appointment's own date records the current time as the actual end, which
// frees the rest of the reserved window for new bookings.
func (s *BookingServiceImpl) UpdateStatus(ctx context.Context, id int64, dto domain.UpdateStatusDTO) (*domain.Appointment, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status == dto.Status {
		return appointment, nil
	}
	if !appointment.Status.CanTransition(dto.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, appointment.Status, dto.Status)
	}

	var actualEnd *string
	if dto.Status == domain.AppointmentStatusFinished {
		now := s.clock.Now()
		if now.Format(validator.DateLayout) == appointment.AppointmentDate {
			end := now.Format("15:04")
			actualEnd = &end
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, dto.Status, actualEnd); err != nil {
		s.logger.Error("ошибка обновления статуса записи", zap.Int64("id", id), zap.String("status", string(dto.Status)), zap.Error(err))
		return nil, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventAppointmentUpdated, updated)

	return updated, nil
}

// UpdateItems replaces the services and custom items of an appointment and
// recomputes its price, description and occupied window.
func (s *BookingServiceImpl) UpdateItems(ctx context.Context, id int64, dto domain.UpdateItemsDTO) (*domain.Appointment, error) {
	if len(dto.ServiceIDs) == 0 && len(dto.CustomItems) == 0 {
		return nil, fmt.Errorf("%w: запись должна содержать хотя бы одну позицию", domain.ErrValidation)
	}

	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var services []domain.Service
	if len(dto.ServiceIDs) > 0 {
		requested := slices.Clone(dto.ServiceIDs)
		slices.Sort(requested)
		requested = slices.Compact(requested)

		services, err = s.serviceRepo.GetByIDs(ctx, requested)
		if err != nil {
			s.logger.Error("ошибка получения услуг", zap.Int64s("ids", requested), zap.Error(err))
			return nil, err
		}
		if len(services) != len(requested) {
			return nil, fmt.Errorf("%w: выбранная услуга не найдена", domain.ErrValidation)
		}
	}

	var price float64
	names := make([]string, 0, len(services)+len(dto.CustomItems))
	ids := make([]int64, 0, len(services))
	for _, svc := range services {
		price += svc.Price
		names = append(names, svc.Name)
		ids = append(ids, svc.ID)
	}
	for _, item := range dto.CustomItems {
		name := validator.SanitizeString(item.Name)
		if name == "" || item.Price < 0 {
			return nil, fmt.Errorf("%w: некорректная дополнительная позиция", domain.ErrValidation)
		}
		price += item.Price
		names = append(names, name)
	}

	appointment.Price = price
	appointment.ServiceDescription = strings.Join(names, " + ")
	appointment.ServiceIDs = ids
	if len(services) > 0 {
		appointment.DurationMinutes, appointment.BufferMinutes = availability.Totals(services)
	}

	if err := s.repo.UpdateItems(ctx, *appointment); err != nil {
		s.logger.Error("ошибка обновления позиций записи", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventAppointmentUpdated, updated)

	return updated, nil
}

func (s *BookingServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("ошибка удаления записи", zap.Int64("id", id), zap.Error(err))
		}
		return err
	}

	s.publish(domain.EventAppointmentDeleted, map[string]int64{"id": id})

	return nil
}

func (s *BookingServiceImpl) Stats(ctx context.Context) (*domain.AppointmentStats, error) {
	stats, err := s.repo.Stats(ctx, s.clock.Now().Format(validator.DateLayout))
	if err != nil {
		s.logger.Error("ошибка получения статистики", zap.Error(err))
		return nil, err
	}

	return stats, nil
}

func (s *BookingServiceImpl) ContactLink(ctx context.Context, id int64) (string, error) {
	appointment, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	return whatsapp.ContactLink(appointment.ClientPhone, appointment.ClientName), nil
}

func (s *BookingServiceImpl) Export(ctx context.Context, w io.Writer, from, to string) error {
	if !validator.ValidateDate(from) || !validator.ValidateDate(to) {
		return fmt.Errorf("%w: некорректный период", domain.ErrValidation)
	}
	if to < from {
		return fmt.Errorf("%w: конец периода раньше начала", domain.ErrValidation)
	}

	appointments, err := s.repo.List(ctx, domain.AppointmentFilter{StartDate: &from, EndDate: &to})
	if err != nil {
		s.logger.Error("ошибка получения записей для отчета", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return err
	}

	if err := report.WriteAppointments(w, report.Period{From: from, To: to}, appointments); err != nil {
		s.logger.Error("ошибка формирования отчета", zap.Error(err))
		return err
	}

	return nil
}

func (s *BookingServiceImpl) publish(eventType domain.EventType, payload interface{}) {
	s.events.Publish(domain.Event{
		Type:      eventType,
		Payload:   payload,
		CreatedAt: s.clock.Now(),
	})
}

func (s *BookingServiceImpl) count(result string) {
	if s.metrics != nil {
		s.metrics.BookingsTotal.WithLabelValues(result).Inc()
	}
}
