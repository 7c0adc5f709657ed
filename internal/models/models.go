package models

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// BusinessHours times are "HH:MM" strings as stored.
type BusinessHours struct {
	ID        string    `db:"id"`
	DayOfWeek int       `db:"day_of_week"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	IsClosed  bool      `db:"is_closed"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BusinessConfig is the single salon settings record: contact details and booking policies.
type BusinessConfig struct {
	SalonName               string    `db:"salon_name"`
	SalonDescription        string    `db:"salon_description"`
	Phone                   string    `db:"phone"`
	Email                   string    `db:"email"`
	Address                 string    `db:"address"`
	BookingAdvanceDays      int       `db:"booking_advance_days"`
	ReminderHoursBefore     int       `db:"reminder_hours_before"`
	CancellationHoursBefore int       `db:"cancellation_hours_before"`
	UpdatedAt               time.Time `db:"updated_at"`
}

type BlockedTimeSlot struct {
	ID        string    `db:"id"`
	BlockDate time.Time `db:"block_date"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

type Client struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	WhatsApp  string    `db:"whatsapp"`
	Email     string    `db:"email"`
	Notes     string    `db:"notes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type ClientStats struct {
	TotalSpent        float64
	TotalAppointments int
	LastAppointment   *time.Time
}

type Service struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	DurationMinutes int       `db:"duration_minutes"`
	Price           float64   `db:"price"`
	ImageURL        string    `db:"image_url"`
	IsActive        bool      `db:"is_active"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type Appointment struct {
	ID                   string            `db:"id"`
	ClientID             string            `db:"client_id"`
	AppointmentDate      time.Time         `db:"appointment_date"`
	StartTime            string            `db:"start_time"`
	EndTime              string            `db:"end_time"`
	TotalPrice           float64           `db:"total_price"`
	TotalDurationMinutes int               `db:"total_duration_minutes"`
	Status               AppointmentStatus `db:"status"`
	Notes                string            `db:"notes"`
	CancellationToken    string            `db:"cancellation_token"`
	CreatedAt            time.Time         `db:"created_at"`
	UpdatedAt            time.Time         `db:"updated_at"`

	Client   *Client
	Services []AppointmentService
}

type AppointmentService struct {
	ID            string  `db:"id"`
	AppointmentID string  `db:"appointment_id"`
	ServiceID     string  `db:"service_id"`
	ServiceName   string  `db:"service_name"`
	Price         float64 `db:"price"`
}

type AppointmentFilter struct {
	Date     *time.Time
	From     *time.Time
	To       *time.Time
	Status   *AppointmentStatus
	ClientID *string
}

type ServiceStat struct {
	Name    string
	Count   int
	Revenue float64
}

type ClientStat struct {
	ClientID         string
	Name             string
	TotalSpent       float64
	AppointmentCount int
}

type DailyRevenue struct {
	Date         time.Time
	Revenue      float64
	Appointments int
}
