package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/lock"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
)

var tracer = otel.Tracer("github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/service")

type Service struct {
	log    *slog.Logger
	store  Store
	locker lock.Locker
	opts   Options

	now func() time.Time
}

// Options carries the configured defaults. Booking policies stored in
// business_config take precedence once the salon saves its settings.
type Options struct {
	LockTTL                 time.Duration
	AdvanceDays             int
	CancellationHoursBefore int
	ReminderHoursBefore     int
	SalonName               string
}

func NewService(log *slog.Logger, store Store, locker lock.Locker, opts Options) *Service {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Second
	}

	return &Service{log: log, store: store, locker: locker, opts: opts, now: time.Now}
}

type Store interface {
	// Business config
	GetBusinessConfig(ctx context.Context) (*models.BusinessConfig, error)
	UpsertBusinessConfig(ctx context.Context, c *models.BusinessConfig) (*models.BusinessConfig, error)

	// Business hours
	ListBusinessHours(ctx context.Context) ([]models.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, week []models.BusinessHours) error

	// Blocked time slots
	CreateBlockedSlot(ctx context.Context, b *models.BlockedTimeSlot) (*models.BlockedTimeSlot, error)
	GetBlockedSlot(ctx context.Context, id string) (*models.BlockedTimeSlot, error)
	ListBlockedSlots(ctx context.Context, from *time.Time) ([]models.BlockedTimeSlot, error)
	ListBlockedSlotsByDate(ctx context.Context, date time.Time) ([]models.BlockedTimeSlot, error)
	DeleteBlockedSlot(ctx context.Context, id string) error

	// Appointments
	CreateBooking(ctx context.Context, client *models.Client, appt *models.Appointment) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	ListActiveAppointmentsByDate(ctx context.Context, date time.Time) ([]models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error
	DeleteAppointment(ctx context.Context, id string) error

	// Clients
	CreateClient(ctx context.Context, c *models.Client) (*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context, search string) ([]models.Client, error)
	UpdateClient(ctx context.Context, c *models.Client) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
	GetClientStats(ctx context.Context, id string) (*models.ClientStats, error)

	// Service catalog
	CreateService(ctx context.Context, sv *models.Service) (*models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, includeInactive bool) ([]models.Service, error)
	GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error)
	UpdateService(ctx context.Context, sv *models.Service) (*models.Service, error)
	DeleteService(ctx context.Context, id string) error

	// Reports
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, int, error)
	TopServices(ctx context.Context, from, to time.Time, limit int) ([]models.ServiceStat, error)
	TopClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientStat, error)
	DailyRevenue(ctx context.Context, from, to time.Time) ([]models.DailyRevenue, error)
}

// localNow is the current wall-clock time re-expressed in UTC, the location
// every parsed calendar date carries. The salon works on one local calendar.
func (s *Service) localNow() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), 0, time.UTC)
}

func (s *Service) today() time.Time {
	n := s.localNow()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
