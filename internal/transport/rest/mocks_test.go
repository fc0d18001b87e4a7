package rest

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"barbershop/internal/availability"
	"barbershop/internal/domain"
)

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) ListActive(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Service), args.Error(1)
}
func (m *mockCatalogService) ListAll(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Service), args.Error(1)
}
func (m *mockCatalogService) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}
func (m *mockCatalogService) Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error) {
	args := m.Called(ctx, dto)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockCatalogService) Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error {
	return m.Called(ctx, id, dto).Error(0)
}
func (m *mockCatalogService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockScheduleService struct{ mock.Mock }

func (m *mockScheduleService) ListDays(ctx context.Context) ([]domain.DaySchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DaySchedule), args.Error(1)
}
func (m *mockScheduleService) UpdateDay(ctx context.Context, weekday int, dto domain.UpdateDayScheduleDTO) (*domain.DaySchedule, error) {
	args := m.Called(ctx, weekday, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySchedule), args.Error(1)
}
func (m *mockScheduleService) ListBlocks(ctx context.Context, from string) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}
func (m *mockScheduleService) CreateBlock(ctx context.Context, dto domain.CreateBlockedSlotDTO) (int64, error) {
	args := m.Called(ctx, dto)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockScheduleService) DeleteBlock(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockSettingsService struct{ mock.Mock }

func (m *mockSettingsService) Public(ctx context.Context) (*domain.PublicSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicSettings), args.Error(1)
}
func (m *mockSettingsService) All(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Error(1)
}
func (m *mockSettingsService) SlotInterval(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *mockSettingsService) UpdateBusinessName(ctx context.Context, dto domain.UpdateBusinessNameDTO) error {
	return m.Called(ctx, dto).Error(0)
}
func (m *mockSettingsService) UpdateSlotInterval(ctx context.Context, dto domain.UpdateSlotIntervalDTO) error {
	return m.Called(ctx, dto).Error(0)
}
func (m *mockSettingsService) UpdateAppearance(ctx context.Context, dto domain.UpdateAppearanceDTO) error {
	return m.Called(ctx, dto).Error(0)
}
func (m *mockSettingsService) UploadImage(ctx context.Context, kind domain.ImageKind, data []byte, filename string) (string, error) {
	args := m.Called(ctx, kind, data, filename)
	return args.String(0), args.Error(1)
}
func (m *mockSettingsService) ClearImage(ctx context.Context, kind domain.ImageKind) error {
	return m.Called(ctx, kind).Error(0)
}

type mockAvailabilityService struct{ mock.Mock }

func (m *mockAvailabilityService) GetSlots(ctx context.Context, date string, serviceIDs []int64) ([]availability.Slot, error) {
	args := m.Called(ctx, date, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Slot), args.Error(1)
}
func (m *mockAvailabilityService) GetCalendar(ctx context.Context, from, to string, serviceIDs []int64) ([]domain.CalendarDay, error) {
	args := m.Called(ctx, from, to, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarDay), args.Error(1)
}

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) Book(ctx context.Context, dto domain.CreateBookingDTO) (*domain.BookingResult, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingResult), args.Error(1)
}
func (m *mockBookingService) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}
func (m *mockBookingService) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Appointment), args.Int(1), args.Error(2)
}
func (m *mockBookingService) UpdateStatus(ctx context.Context, id int64, dto domain.UpdateStatusDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}
func (m *mockBookingService) UpdateItems(ctx context.Context, id int64, dto domain.UpdateItemsDTO) (*domain.Appointment, error) {
	args := m.Called(ctx, id, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}
func (m *mockBookingService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBookingService) Stats(ctx context.Context) (*domain.AppointmentStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppointmentStats), args.Error(1)
}
func (m *mockBookingService) ContactLink(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *mockBookingService) Export(ctx context.Context, w io.Writer, from, to string) error {
	args := m.Called(ctx, w, from, to)
	if data, ok := args.Get(1).([]byte); ok {
		_, _ = w.Write(data)
	}
	return args.Error(0)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error) {
	args := m.Called(ctx, dto, userAgent, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}
func (m *mockAuthService) RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error) {
	args := m.Called(ctx, refreshToken, userAgent, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tokens), args.Error(1)
}
func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}
func (m *mockAuthService) ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Get(1).(domain.UserRole), args.Error(2)
}
func (m *mockAuthService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockTeamService struct{ mock.Mock }

func (m *mockTeamService) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockTeamService) CreateAdmin(ctx context.Context, dto domain.CreateAdminDTO) (int64, error) {
	args := m.Called(ctx, dto)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockTeamService) UpdatePassword(ctx context.Context, id int64, dto domain.UpdatePasswordDTO) error {
	return m.Called(ctx, id, dto).Error(0)
}
func (m *mockTeamService) Delete(ctx context.Context, actorID, id int64) error {
	return m.Called(ctx, actorID, id).Error(0)
}
func (m *mockTeamService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}
