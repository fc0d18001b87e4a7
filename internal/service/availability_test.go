package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/availability"
	"barbershop/internal/domain"
	"barbershop/internal/metrics"
)

type availabilityFixture struct {
	services  *mockServiceRepo
	schedules *mockScheduleRepo
	appts     *mockAppointmentRepo
	blocks    *mockBlockedRepo
	settings  *mockSettingsRepo
	events    *recordingPublisher
	metrics   *metrics.Metrics
	clock     fixedClock
	svc       *AvailabilityServiceImpl
	booking   *BookingServiceImpl
}

// newAvailabilityFixture pins "now" to Monday 2026-03-09 10:00 in the shop timezone.
func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()

	loc := bahia(t)
	f := &availabilityFixture{
		services:  new(mockServiceRepo),
		schedules: new(mockScheduleRepo),
		appts:     new(mockAppointmentRepo),
		blocks:    new(mockBlockedRepo),
		settings:  new(mockSettingsRepo),
		events:    &recordingPublisher{},
		metrics:   metrics.NewMetrics("test", prometheus.NewRegistry()),
		clock:     fixedClock{now: time.Date(2026, 3, 9, 10, 0, 0, 0, loc)},
	}

	shop := config.ShopConfig{
		Location:        loc,
		WhatsAppNumber:  "5571988335001",
		CalendarMaxDays: 62,
	}
	settings := NewSettingsService(f.settings, nil, nil, 30, zap.NewNop())
	f.svc = NewAvailabilityService(f.services, f.schedules, f.appts, f.blocks, settings, f.clock, shop, f.metrics, zap.NewNop())
	f.booking = NewBookingService(f.appts, f.services, f.svc, f.events, f.clock, shop, f.metrics, zap.NewNop())

	return f
}

var (
	corte = domain.Service{ID: 1, Name: "Corte", Price: 35, DurationMinutes: 30, BufferMinutes: 5, Active: true}
	barba = domain.Service{ID: 2, Name: "Barba", Price: 20, DurationMinutes: 20, BufferMinutes: 10, Active: true}
)

func openDay(weekday int) *domain.DaySchedule {
	return &domain.DaySchedule{DayOfWeek: weekday, IsOpen: true, OpenTime: "08:00", CloseTime: "21:00"}
}

func TestAvailabilityService_GetSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("free day", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{corte}, nil).Once()
		f.schedules.On("GetByWeekday", ctx, 2).Return(openDay(2), nil).Once()
		f.settings.On("Get", ctx, domain.SettingSlotInterval).Return("30", true, nil).Once()
		f.appts.On("ListOccupying", ctx, "2026-03-10").Return([]domain.Appointment{}, nil).Once()
		f.blocks.On("ListByDate", ctx, "2026-03-10").Return([]domain.BlockedSlot{}, nil).Once()

		slots, err := f.svc.GetSlots(ctx, "2026-03-10", []int64{1, 1})
		require.NoError(t, err)
		require.Len(t, slots, 26)
		assert.Equal(t, "08:00", slots[0].Time)
		assert.Equal(t, "20:30", slots[25].Time)
		assert.Len(t, availability.Available(slots), 26)
	})

	t.Run("booked appointment blocks overlapping starts", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{corte}, nil).Once()
		f.schedules.On("GetByWeekday", ctx, 2).Return(openDay(2), nil).Once()
		f.settings.On("Get", ctx, domain.SettingSlotInterval).Return("", false, nil).Once()
		f.appts.On("ListOccupying", ctx, "2026-03-10").Return([]domain.Appointment{{
			AppointmentDate: "2026-03-10", AppointmentTime: "10:00", Status: domain.AppointmentStatusConfirmed,
			DurationMinutes: 30, BufferMinutes: 5,
		}}, nil).Once()
		f.blocks.On("ListByDate", ctx, "2026-03-10").Return([]domain.BlockedSlot{{BlockedDate: "2026-03-10", BlockedTime: strPtr("15:00")}}, nil).Once()

		slots, err := f.svc.GetSlots(ctx, "2026-03-10", []int64{1})
		require.NoError(t, err)

		byTime := make(map[string]availability.Slot)
		for _, s := range slots {
			byTime[s.Time] = s
		}
		assert.Equal(t, availability.ReasonBooked, byTime["09:30"].Reason)
		assert.Equal(t, availability.ReasonBooked, byTime["10:00"].Reason)
		assert.Equal(t, availability.ReasonBooked, byTime["10:30"].Reason)
		assert.True(t, byTime["11:00"].Available)
		assert.Equal(t, availability.ReasonBlocked, byTime["15:00"].Reason)
	})

	t.Run("closed day skips loading bookings", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{corte}, nil).Once()
		f.schedules.On("GetByWeekday", ctx, 0).Return(&domain.DaySchedule{DayOfWeek: 0, OpenTime: "08:00", CloseTime: "21:00"}, nil).Once()
		f.settings.On("Get", ctx, domain.SettingSlotInterval).Return("30", true, nil).Once()

		slots, err := f.svc.GetSlots(ctx, "2026-03-15", []int64{1})
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
		f.appts.AssertNotCalled(t, "ListOccupying", mock.Anything, mock.Anything)
	})

	t.Run("missing weekday row is closed", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{corte}, nil).Once()
		f.schedules.On("GetByWeekday", ctx, 3).Return(nil, nil).Once()
		f.settings.On("Get", ctx, domain.SettingSlotInterval).Return("30", true, nil).Once()

		slots, err := f.svc.GetSlots(ctx, "2026-03-11", []int64{1})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("malformed interval setting", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{corte}, nil).Once()
		f.schedules.On("GetByWeekday", ctx, 2).Return(openDay(2), nil).Once()
		f.settings.On("Get", ctx, domain.SettingSlotInterval).Return("half an hour", true, nil).Once()

		_, err := f.svc.GetSlots(ctx, "2026-03-10", []int64{1})
		var cfgErr *availability.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, domain.SettingSlotInterval, cfgErr.Field)
	})

	t.Run("selection errors", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		_, err := f.svc.GetSlots(ctx, "2026-03-10", nil)
		assert.ErrorIs(t, err, availability.ErrNoServices)

		_, err = f.svc.GetSlots(ctx, "10/03/2026", []int64{1})
		assert.ErrorIs(t, err, domain.ErrValidation)

		f.services.On("GetByIDs", ctx, []int64{1, 9}).Return([]domain.Service{corte}, nil).Once()
		_, err = f.svc.GetSlots(ctx, "2026-03-10", []int64{9, 1})
		assert.ErrorIs(t, err, domain.ErrValidation)

		inactive := corte
		inactive.Active = false
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{inactive}, nil).Once()
		_, err = f.svc.GetSlots(ctx, "2026-03-10", []int64{1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{}, errors.New("connection reset")).Once()

		_, err := f.svc.GetSlots(ctx, "2026-03-10", []int64{1})
		assert.EqualError(t, err, "connection reset")
	})
}

func TestAvailabilityService_GetCalendar(t *testing.T) {
	ctx := context.Background()

	week := []domain.DaySchedule{{DayOfWeek: 0, OpenTime: "08:00", CloseTime: "21:00"}}
	for d := 1; d <= 6; d++ {
		week = append(week, *openDay(d))
	}

	t.Run("reasons", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.services.On("GetByIDs", ctx, []int64{1}).Return([]domain.Service{corte}, nil).Once()
		f.schedules.On("List", ctx).Return(week, nil).Once()
		f.blocks.On("ListBetween", ctx, "2026-03-08", "2026-03-15").Return([]domain.BlockedSlot{
			{BlockedDate: "2026-03-12", FullDay: true},
			{BlockedDate: "2026-03-13", BlockedTime: strPtr("09:00")},
		}, nil).Once()

		days, err := f.svc.GetCalendar(ctx, "2026-03-08", "2026-03-15", []int64{1})
		require.NoError(t, err)
		require.Len(t, days, 8)

		expected := []domain.CalendarDay{
			{Date: "2026-03-08", Reason: domain.CalendarReasonPast},
			{Date: "2026-03-09", Selectable: true},
			{Date: "2026-03-10", Selectable: true},
			{Date: "2026-03-11", Selectable: true},
			{Date: "2026-03-12", Reason: domain.CalendarReasonFullDay},
			{Date: "2026-03-13", Selectable: true},
			{Date: "2026-03-14", Selectable: true},
			{Date: "2026-03-15", Reason: domain.CalendarReasonClosed},
		}
		assert.Equal(t, expected, days)
	})

	t.Run("selection longer than the day", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		long := domain.Service{ID: 3, Name: "Dia de noivo", DurationMinutes: 800, Active: true}
		f.services.On("GetByIDs", ctx, []int64{3}).Return([]domain.Service{long}, nil).Once()
		f.schedules.On("List", ctx).Return(week, nil).Once()
		f.blocks.On("ListBetween", ctx, "2026-03-10", "2026-03-10").Return([]domain.BlockedSlot{}, nil).Once()

		days, err := f.svc.GetCalendar(ctx, "2026-03-10", "2026-03-10", []int64{3})
		require.NoError(t, err)
		assert.Equal(t, []domain.CalendarDay{{Date: "2026-03-10", Reason: domain.CalendarReasonTooLong}}, days)
	})

	t.Run("invalid ranges", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		_, err := f.svc.GetCalendar(ctx, "2026-03-10", "2026-03-01", []int64{1})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = f.svc.GetCalendar(ctx, "2026-03-01", "2026-06-01", []int64{1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
