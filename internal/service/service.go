package service

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"barbershop/config"
	"barbershop/internal/availability"
	"barbershop/internal/cache"
	"barbershop/internal/domain"
	"barbershop/internal/metrics"
	"barbershop/internal/repository"
	"barbershop/internal/storage"
)

// Clock returns the current shop-local time.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	location *time.Location
}

func NewClock(location *time.Location) Clock {
	return locationClock{location: location}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.location)
}

// EventPublisher delivers dashboard events. Publishing never blocks the caller.
type EventPublisher interface {
	Publish(event domain.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.Event) {}

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       *cache.Cache
	Metrics     *metrics.Metrics
	Events      EventPublisher
	Clock       Clock
}

type Services struct {
	Catalog      CatalogService
	Schedule     ScheduleService
	Settings     SettingsService
	Availability AvailabilityService
	Booking      BookingService
	Auth         AuthService
	Team         TeamService
}

func NewServices(deps Deps) *Services {
	if deps.Events == nil {
		deps.Events = noopPublisher{}
	}
	if deps.Clock == nil {
		deps.Clock = NewClock(deps.Config.Shop.Location)
	}

	settings := NewSettingsService(deps.Repos.Settings, deps.FileStorage, deps.Cache, deps.Config.Shop.DefaultSlotInterval, deps.Logger)
	availabilitySvc := NewAvailabilityService(
		deps.Repos.Service, deps.Repos.Schedule, deps.Repos.Appointment, deps.Repos.BlockedSlot,
		settings, deps.Clock, deps.Config.Shop, deps.Metrics, deps.Logger,
	)

	return &Services{
		Catalog:      NewCatalogService(deps.Repos.Service, deps.Cache, deps.Logger),
		Schedule:     NewScheduleService(deps.Repos.Schedule, deps.Repos.BlockedSlot, deps.Events, deps.Clock, deps.Logger),
		Settings:     settings,
		Availability: availabilitySvc,
		Booking: NewBookingService(
			deps.Repos.Appointment, deps.Repos.Service, availabilitySvc, deps.Events,
			deps.Clock, deps.Config.Shop, deps.Metrics, deps.Logger,
		),
		Auth: NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Team: NewTeamService(deps.Repos.User, deps.Repos.Auth, deps.Logger),
	}
}

type CatalogService interface {
	ListActive(ctx context.Context) ([]domain.Service, error)
	ListAll(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, dto domain.CreateServiceDTO) (int64, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id int64) error
}

type ScheduleService interface {
	ListDays(ctx context.Context) ([]domain.DaySchedule, error)
	UpdateDay(ctx context.Context, weekday int, dto domain.UpdateDayScheduleDTO) (*domain.DaySchedule, error)
	ListBlocks(ctx context.Context, from string) ([]domain.BlockedSlot, error)
	CreateBlock(ctx context.Context, dto domain.CreateBlockedSlotDTO) (int64, error)
	DeleteBlock(ctx context.Context, id int64) error
}

type SettingsService interface {
	Public(ctx context.Context) (*domain.PublicSettings, error)
	All(ctx context.Context) (map[string]string, error)
	SlotInterval(ctx context.Context) (int, error)
	UpdateBusinessName(ctx context.Context, dto domain.UpdateBusinessNameDTO) error
	UpdateSlotInterval(ctx context.Context, dto domain.UpdateSlotIntervalDTO) error
	UpdateAppearance(ctx context.Context, dto domain.UpdateAppearanceDTO) error
	UploadImage(ctx context.Context, kind domain.ImageKind, data []byte, filename string) (string, error)
	ClearImage(ctx context.Context, kind domain.ImageKind) error
}

type AvailabilityService interface {
	GetSlots(ctx context.Context, date string, serviceIDs []int64) ([]availability.Slot, error)
	GetCalendar(ctx context.Context, from, to string, serviceIDs []int64) ([]domain.CalendarDay, error)
}

type BookingService interface {
	Book(ctx context.Context, dto domain.CreateBookingDTO) (*domain.BookingResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	UpdateStatus(ctx context.Context, id int64, dto domain.UpdateStatusDTO) (*domain.Appointment, error)
	UpdateItems(ctx context.Context, id int64, dto domain.UpdateItemsDTO) (*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*domain.AppointmentStats, error)
	ContactLink(ctx context.Context, id int64) (string, error)
	Export(ctx context.Context, w io.Writer, from, to string) error
}

type AuthService interface {
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
	Me(ctx context.Context, userID int64) (*domain.User, error)
}

type TeamService interface {
	List(ctx context.Context) ([]domain.User, error)
	CreateAdmin(ctx context.Context, dto domain.CreateAdminDTO) (int64, error)
	UpdatePassword(ctx context.Context, id int64, dto domain.UpdatePasswordDTO) error
	Delete(ctx context.Context, actorID, id int64) error
	EnsureSuperAdmin(ctx context.Context, email, password string) error
}
