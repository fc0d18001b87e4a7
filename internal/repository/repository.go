package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"barbershop/internal/domain"
)

type Repositories struct {
	Service     ServiceRepository
	Schedule    ScheduleRepository
	BlockedSlot BlockedSlotRepository
	Appointment AppointmentRepository
	Settings    SettingsRepository
	User        UserRepository
	Auth        AuthRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Service:     NewServiceRepository(db),
		Schedule:    NewScheduleRepository(db),
		BlockedSlot: NewBlockedSlotRepository(db),
		Appointment: NewAppointmentRepository(db),
		Settings:    NewSettingsRepository(db),
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
	}
}

type ServiceRepository interface {
	Create(ctx context.Context, service domain.Service) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Service, error)
	Update(ctx context.Context, service domain.Service) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, onlyActive bool) ([]domain.Service, error)
}

type ScheduleRepository interface {
	List(ctx context.Context) ([]domain.DaySchedule, error)
	// GetByWeekday returns nil without error when the weekday has no row.
	GetByWeekday(ctx context.Context, weekday int) (*domain.DaySchedule, error)
	Update(ctx context.Context, day domain.DaySchedule) error
}

type BlockedSlotRepository interface {
	Create(ctx context.Context, slot domain.BlockedSlot) (int64, error)
	Delete(ctx context.Context, id int64) error
	ListByDate(ctx context.Context, date string) ([]domain.BlockedSlot, error)
	ListBetween(ctx context.Context, from, to string) ([]domain.BlockedSlot, error)
	ListFrom(ctx context.Context, from string) ([]domain.BlockedSlot, error)
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

// DayState is what a booking must be checked against under the day lock.
type DayState struct {
	Appointments []domain.Appointment
	Blocks       []domain.BlockedSlot
}

type AppointmentRepository interface {
	// CreateChecked inserts the appointment while holding a per-date lock.
	// check sees the day's current appointments and blocks; a non-nil error aborts the insert.
	CreateChecked(ctx context.Context, appointment domain.Appointment, check func(DayState) error) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	ListOccupying(ctx context.Context, date string) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, actualEndTime *string) error
	UpdateItems(ctx context.Context, appointment domain.Appointment) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, today string) (*domain.AppointmentStats, error)
}

type SettingsRepository interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
}

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context, role domain.UserRole) (int, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	// ConsumeSession removes and returns the session of a refresh token.
	ConsumeSession(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
