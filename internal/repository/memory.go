package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Eursukkul/booking-microservice/entry-service/internal/models"
)

// MemoryEventRepository keeps event configurations in process memory.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string]models.EventConfig
}

func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[string]models.EventConfig)}
}

func (r *MemoryEventRepository) Upsert(_ context.Context, event *models.EventConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := cloneEvent(event)
	if existing, ok := r.events[event.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.events[event.ID] = stored

	event.CreatedAt, event.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	return nil
}

func (r *MemoryEventRepository) FindByID(_ context.Context, id string) (*models.EventConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneEvent(&event)
	return &out, nil
}

func (r *MemoryEventRepository) FindAll(_ context.Context) ([]models.EventConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]models.EventConfig, 0, len(r.events))
	for _, e := range r.events {
		events = append(events, cloneEvent(&e))
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func cloneEvent(e *models.EventConfig) models.EventConfig {
	c := *e
	c.Tiers = append([]models.PriceTier(nil), e.Tiers...)
	if e.FreeEntryBeforeTime != nil {
		t := *e.FreeEntryBeforeTime
		c.FreeEntryBeforeTime = &t
	}
	return c
}

// MemoryBookingRepository keeps bookings in process memory. Each booking has its
// own lock so updates to different bookings never wait on each other.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*models.GroupBooking
	locks    map[string]*sync.Mutex
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[string]*models.GroupBooking),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *models.GroupBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	booking.CreatedAt, booking.UpdatedAt = now, now
	for i := range booking.Members {
		booking.Members[i].BookingID = booking.ID
	}
	r.bookings[booking.ID] = booking.Clone()
	r.locks[booking.ID] = &sync.Mutex{}
	return nil
}

func (r *MemoryBookingRepository) FindByID(_ context.Context, id string) (*models.GroupBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b.Clone(), nil
}

func (r *MemoryBookingRepository) FindByQRCode(_ context.Context, code string) (*models.GroupBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.QRCode == code {
			return b.Clone(), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryBookingRepository) FindByEventID(_ context.Context, eventID string, status *models.BookingStatus) ([]models.GroupBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.GroupBooking
	for _, b := range r.bookings {
		if b.EventID != eventID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, *b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryBookingRepository) Update(_ context.Context, id string, fn UpdateFunc) (*models.GroupBooking, error) {
	r.mu.RLock()
	lock, ok := r.locks[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	r.mu.RLock()
	working := r.bookings[id].Clone()
	r.mu.RUnlock()

	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	r.bookings[id] = working.Clone()
	r.mu.Unlock()

	return working, nil
}
