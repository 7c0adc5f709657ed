package api

// Availability

type AvailabilityResponse struct {
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	IsClosed        bool     `json:"is_closed"`
	Slots           []string `json:"slots"`
}

// Appointments

type ClientInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	WhatsApp string `json:"whatsapp" validate:"required,min=7,max=20"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Notes    string `json:"notes,omitempty"`
}

type AppointmentRequest struct {
	Client     ClientInput `json:"client" validate:"required"`
	Date       string      `json:"appointment_date" validate:"required"`
	StartTime  string      `json:"start_time" validate:"required"`
	ServiceIDs []string    `json:"service_ids" validate:"required,min=1,dive,required"`
	Notes      string      `json:"notes,omitempty"`
}

type AppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed completed cancelled no_show"`
}

type AppointmentServiceResponse struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

type AppointmentResponse struct {
	ID                   string                       `json:"id"`
	ClientID             string                       `json:"client_id"`
	Date                 string                       `json:"appointment_date"`
	StartTime            string                       `json:"start_time"`
	EndTime              string                       `json:"end_time"`
	TotalPrice           float64                      `json:"total_price"`
	TotalDurationMinutes int                          `json:"total_duration_minutes"`
	Status               string                       `json:"status"`
	Notes                string                       `json:"notes,omitempty"`
	CancellationToken    string                       `json:"cancellation_token,omitempty"`
	Client               *ClientResponse              `json:"client,omitempty"`
	Services             []AppointmentServiceResponse `json:"services"`
}

// Business hours

type BusinessHoursEntry struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time,omitempty" validate:"required_if=IsClosed false"`
	EndTime   string `json:"end_time,omitempty" validate:"required_if=IsClosed false"`
	IsClosed  bool   `json:"is_closed"`
}

type BusinessHoursRequest struct {
	Hours []BusinessHoursEntry `json:"hours" validate:"required,min=1,max=7,dive"`
}

type BusinessHoursResponse struct {
	Hours []BusinessHoursEntry `json:"hours"`
}

// Business config

// BusinessConfigRequest updates the salon settings; omitted fields keep their current value,
// so the info form and the policies form can be saved independently.
type BusinessConfigRequest struct {
	SalonName               *string `json:"salon_name,omitempty" validate:"omitempty,min=1,max=120"`
	SalonDescription        *string `json:"salon_description,omitempty" validate:"omitempty,max=1000"`
	Phone                   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email                   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address                 *string `json:"address,omitempty" validate:"omitempty,max=255"`
	BookingAdvanceDays      *int    `json:"booking_advance_days,omitempty" validate:"omitempty,min=1,max=365"`
	ReminderHoursBefore     *int    `json:"reminder_hours_before,omitempty" validate:"omitempty,min=1,max=168"`
	CancellationHoursBefore *int    `json:"cancellation_hours_before,omitempty" validate:"omitempty,min=1,max=72"`
}

type BusinessConfigResponse struct {
	SalonName               string `json:"salon_name"`
	SalonDescription        string `json:"salon_description,omitempty"`
	Phone                   string `json:"phone,omitempty"`
	Email                   string `json:"email,omitempty"`
	Address                 string `json:"address,omitempty"`
	BookingAdvanceDays      int    `json:"booking_advance_days"`
	ReminderHoursBefore     int    `json:"reminder_hours_before"`
	CancellationHoursBefore int    `json:"cancellation_hours_before"`
	UpdatedAt               string `json:"updated_at,omitempty"`
}

// Blocked time slots

type BlockedSlotRequest struct {
	Date      string `json:"block_date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Reason    string `json:"reason,omitempty" validate:"max=255"`
}

type BlockedSlotResponse struct {
	ID        string `json:"id"`
	Date      string `json:"block_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
}

// Clients

type ClientRequest struct {
	ClientInput
}

type ClientResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type ClientStatsResponse struct {
	ClientID          string  `json:"client_id"`
	TotalSpent        float64 `json:"total_spent"`
	TotalAppointments int     `json:"total_appointments"`
	LastAppointment   string  `json:"last_appointment,omitempty"`
	AverageSpent      float64 `json:"average_spent"`
}

// Service catalog

type ServiceRequest struct {
	Name            string  `json:"name" validate:"required,max=120"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes" validate:"gt=0,max=720"`
	Price           float64 `json:"price" validate:"gte=0"`
	ImageURL        string  `json:"image_url,omitempty" validate:"omitempty,url"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	ImageURL        string  `json:"image_url,omitempty"`
	IsActive        bool    `json:"is_active"`
}

// Reports

type ServiceStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ClientStat struct {
	ClientID         string  `json:"client_id"`
	Name             string  `json:"name"`
	TotalSpent       float64 `json:"total_spent"`
	AppointmentCount int     `json:"appointment_count"`
}

type DailyRevenue struct {
	Day          int     `json:"day"`
	Revenue      float64 `json:"revenue"`
	Appointments int     `json:"appointments"`
}

type FinancialReportResponse struct {
	Month               string         `json:"month"`
	CurrentMonthRevenue float64        `json:"current_month_revenue"`
	LastMonthRevenue    float64        `json:"last_month_revenue"`
	RevenueGrowth       float64        `json:"revenue_growth"`
	TotalAppointments   int            `json:"total_appointments"`
	AverageTicket       float64        `json:"average_ticket"`
	PopularServices     []ServiceStat  `json:"popular_services"`
	VIPClients          []ClientStat   `json:"vip_clients"`
	DailyRevenue        []DailyRevenue `json:"daily_revenue"`
}
