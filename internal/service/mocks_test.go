package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"barbershop/internal/domain"
	"barbershop/internal/repository"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func bahia(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bahia")
	require.NoError(t, err)
	return loc
}

func strPtr(s string) *string { return &s }

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) Create(ctx context.Context, s domain.Service) (int64, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}
func (m *mockServiceRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Service), args.Error(1)
}
func (m *mockServiceRepo) Update(ctx context.Context, s domain.Service) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockServiceRepo) List(ctx context.Context, onlyActive bool) ([]domain.Service, error) {
	args := m.Called(ctx, onlyActive)
	return args.Get(0).([]domain.Service), args.Error(1)
}

type mockScheduleRepo struct {
	mock.Mock
}

func (m *mockScheduleRepo) List(ctx context.Context) ([]domain.DaySchedule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.DaySchedule), args.Error(1)
}
func (m *mockScheduleRepo) GetByWeekday(ctx context.Context, weekday int) (*domain.DaySchedule, error) {
	args := m.Called(ctx, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySchedule), args.Error(1)
}
func (m *mockScheduleRepo) Update(ctx context.Context, day domain.DaySchedule) error {
	return m.Called(ctx, day).Error(0)
}

type mockBlockedRepo struct {
	mock.Mock
}

func (m *mockBlockedRepo) Create(ctx context.Context, b domain.BlockedSlot) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockBlockedRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockBlockedRepo) ListByDate(ctx context.Context, date string) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}
func (m *mockBlockedRepo) ListBetween(ctx context.Context, from, to string) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}
func (m *mockBlockedRepo) ListFrom(ctx context.Context, from string) ([]domain.BlockedSlot, error) {
	args := m.Called(ctx, from)
	return args.Get(0).([]domain.BlockedSlot), args.Error(1)
}
func (m *mockBlockedRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

// mockAppointmentRepo.CreateChecked runs check against the DayState returned
// by the expectation, like the real repository does inside its transaction.
type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) CreateChecked(ctx context.Context, a domain.Appointment, check func(repository.DayState) error) (int64, error) {
	args := m.Called(ctx, a)
	if err := check(args.Get(0).(repository.DayState)); err != nil {
		return 0, err
	}
	return args.Get(1).(int64), args.Error(2)
}
func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}
func (m *mockAppointmentRepo) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *mockAppointmentRepo) CountByFilter(ctx context.Context, f domain.AppointmentFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}
func (m *mockAppointmentRepo) ListOccupying(ctx context.Context, date string) ([]domain.Appointment, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, end *string) error {
	return m.Called(ctx, id, status, end).Error(0)
}
func (m *mockAppointmentRepo) UpdateItems(ctx context.Context, a domain.Appointment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAppointmentRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockAppointmentRepo) Stats(ctx context.Context, today string) (*domain.AppointmentStats, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppointmentStats), args.Error(1)
}

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) GetAll(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Error(1)
}
func (m *mockSettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}
func (m *mockSettingsRepo) Set(ctx context.Context, values map[string]string) error {
	return m.Called(ctx, values).Error(0)
}
func (m *mockSettingsRepo) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockUserRepo) CountByRole(ctx context.Context, role domain.UserRole) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) CreateSession(ctx context.Context, s domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *mockAuthRepo) ConsumeSession(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *mockAuthRepo) DeleteSessionsByUserID(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockAuthRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) UploadFile(ctx context.Context, data []byte, filename, folder string) (string, error) {
	args := m.Called(ctx, data, filename, folder)
	return args.String(0), args.Error(1)
}
func (m *mockFileStorage) DeleteFile(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type recordingPublisher struct {
	events []domain.Event
}

func (p *recordingPublisher) Publish(e domain.Event) {
	p.events = append(p.events, e)
}
