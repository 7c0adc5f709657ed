package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/internal/models"
	"github.com/AbhigaelCarranza/nail-beauty-scheduler-pro/pkg/response"
)

// fakeStore is an in-memory Store good enough for service tests.
type fakeStore struct {
	mu sync.Mutex

	seq      int
	config   *models.BusinessConfig
	hours    []models.BusinessHours
	blocked  map[string]models.BlockedTimeSlot
	appts    map[string]models.Appointment
	clients  map[string]models.Client
	services map[string]models.Service

	revenue map[string]float64 // keyed by from date
	counts  map[string]int
	daily   []models.DailyRevenue
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		blocked:  map[string]models.BlockedTimeSlot{},
		appts:    map[string]models.Appointment{},
		clients:  map[string]models.Client{},
		services: map[string]models.Service{},
		revenue:  map[string]float64{},
		counts:   map[string]int{},
	}
}

func (f *fakeStore) GetBusinessConfig(ctx context.Context) (*models.BusinessConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.config == nil {
		return nil, response.ErrNotFound
	}
	c := *f.config
	return &c, nil
}

func (f *fakeStore) UpsertBusinessConfig(ctx context.Context, c *models.BusinessConfig) (*models.BusinessConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	saved := *c
	saved.UpdatedAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	f.config = &saved

	out := saved
	return &out, nil
}

func (f *fakeStore) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) ListBusinessHours(ctx context.Context) ([]models.BusinessHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.BusinessHours(nil), f.hours...), nil
}

func (f *fakeStore) ReplaceBusinessHours(ctx context.Context, week []models.BusinessHours) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hours = append([]models.BusinessHours(nil), week...)
	sort.Slice(f.hours, func(i, j int) bool { return f.hours[i].DayOfWeek < f.hours[j].DayOfWeek })
	return nil
}

func (f *fakeStore) CreateBlockedSlot(ctx context.Context, b *models.BlockedTimeSlot) (*models.BlockedTimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *b
	c.ID = f.nextID("blk")
	f.blocked[c.ID] = c
	return &c, nil
}

func (f *fakeStore) GetBlockedSlot(ctx context.Context, id string) (*models.BlockedTimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blocked[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &b, nil
}

func (f *fakeStore) ListBlockedSlots(ctx context.Context, from *time.Time) ([]models.BlockedTimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.BlockedTimeSlot{}
	for _, b := range f.blocked {
		if from == nil || !b.BlockDate.Before(*from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BlockDate.Before(out[j].BlockDate) })
	return out, nil
}

func (f *fakeStore) ListBlockedSlotsByDate(ctx context.Context, date time.Time) ([]models.BlockedTimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BlockedTimeSlot
	for _, b := range f.blocked {
		if b.BlockDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteBlockedSlot(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blocked[id]; !ok {
		return response.ErrNotFound
	}
	delete(f.blocked, id)
	return nil
}

func (f *fakeStore) CreateBooking(ctx context.Context, client *models.Client, appt *models.Appointment) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var c models.Client
	found := false
	for _, existing := range f.clients {
		if existing.WhatsApp == client.WhatsApp {
			c, found = existing, true
			c.Name = client.Name
			break
		}
	}
	if !found {
		c = *client
		c.ID = f.nextID("cli")
	}
	f.clients[c.ID] = c

	a := *appt
	a.ID = f.nextID("apt")
	a.ClientID = c.ID
	a.Client = &c
	f.appts[a.ID] = a
	return &a, nil
}

func (f *fakeStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &a, nil
}

func (f *fakeStore) GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.CancellationToken == token {
			return &a, nil
		}
	}
	return nil, response.ErrNotFound
}

func (f *fakeStore) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.appts {
		if filter.Date != nil && !a.AppointmentDate.Equal(*filter.Date) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.ClientID != nil && a.ClientID != *filter.ClientID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentDate.Equal(out[j].AppointmentDate) {
			return out[i].AppointmentDate.Before(out[j].AppointmentDate)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeStore) ListActiveAppointmentsByDate(ctx context.Context, date time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.AppointmentDate.Equal(date) && a.Status != models.AppointmentCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appts[id]
	if !ok {
		return response.ErrNotFound
	}
	a.Status = status
	f.appts[id] = a
	return nil
}

func (f *fakeStore) DeleteAppointment(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.appts[id]; !ok {
		return response.ErrNotFound
	}
	delete(f.appts, id)
	return nil
}

func (f *fakeStore) CreateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.clients {
		if existing.WhatsApp == c.WhatsApp {
			return nil, response.ErrConflict
		}
	}
	created := *c
	created.ID = f.nextID("cli")
	f.clients[created.ID] = created
	return &created, nil
}

func (f *fakeStore) GetClient(ctx context.Context, id string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &c, nil
}

func (f *fakeStore) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Client{}
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) UpdateClient(ctx context.Context, c *models.Client) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c.ID]; !ok {
		return nil, response.ErrNotFound
	}
	f.clients[c.ID] = *c
	updated := *c
	return &updated, nil
}

func (f *fakeStore) DeleteClient(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[id]; !ok {
		return response.ErrNotFound
	}
	delete(f.clients, id)
	return nil
}

func (f *fakeStore) GetClientStats(ctx context.Context, id string) (*models.ClientStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var st models.ClientStats
	for _, a := range f.appts {
		if a.ClientID != id || a.Status == models.AppointmentCancelled {
			continue
		}
		st.TotalSpent += a.TotalPrice
		st.TotalAppointments++
		if st.LastAppointment == nil || a.AppointmentDate.After(*st.LastAppointment) {
			d := a.AppointmentDate
			st.LastAppointment = &d
		}
	}
	return &st, nil
}

func (f *fakeStore) CreateService(ctx context.Context, sv *models.Service) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	created := *sv
	created.ID = f.nextID("svc")
	f.services[created.ID] = created
	return &created, nil
}

func (f *fakeStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sv, ok := f.services[id]
	if !ok {
		return nil, response.ErrNotFound
	}
	return &sv, nil
}

func (f *fakeStore) ListServices(ctx context.Context, includeInactive bool) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Service{}
	for _, sv := range f.services {
		if sv.IsActive || includeInactive {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeStore) GetServicesByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Service
	for _, id := range ids {
		if sv, ok := f.services[id]; ok {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateService(ctx context.Context, sv *models.Service) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[sv.ID]; !ok {
		return nil, response.ErrNotFound
	}
	f.services[sv.ID] = *sv
	updated := *sv
	return &updated, nil
}

func (f *fakeStore) DeleteService(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[id]; !ok {
		return response.ErrNotFound
	}
	delete(f.services, id)
	return nil
}

func (f *fakeStore) RevenueBetween(ctx context.Context, from, to time.Time) (float64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := from.Format("2006-01-02")
	return f.revenue[key], f.counts[key], nil
}

func (f *fakeStore) TopServices(ctx context.Context, from, to time.Time, limit int) ([]models.ServiceStat, error) {
	return []models.ServiceStat{{Name: "Gel manicure", Count: 3, Revenue: 90}}, nil
}

func (f *fakeStore) TopClients(ctx context.Context, from, to time.Time, limit int) ([]models.ClientStat, error) {
	return []models.ClientStat{{ClientID: "cli-1", Name: "Ana", TotalSpent: 90, AppointmentCount: 3}}, nil
}

func (f *fakeStore) DailyRevenue(ctx context.Context, from, to time.Time) ([]models.DailyRevenue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.DailyRevenue(nil), f.daily...), nil
}

// fakeLocker grants a key to one holder at a time.
type fakeLocker struct {
	mu         sync.Mutex
	held       map[string]bool
	released   int
	releaseErr error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		l.released++
		return l.releaseErr
	}, true, nil
}
