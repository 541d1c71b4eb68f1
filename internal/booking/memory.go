package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a mutex-guarded in-memory Repository keeping
// bookings in insertion order.
type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*Booking
	order []string
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID: make(map[string]*Booking),
	}
}

func (r *memoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()

	stored := *b
	r.byID[b.ID] = &stored
	r.order = append(r.order, b.ID)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	clean := *b
	return &clean, nil
}

func (r *memoryRepository) List(ctx context.Context, userID string) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*Booking, 0, len(r.order))
	for _, id := range r.order {
		b := r.byID[id]
		if userID != "" && b.UserID != userID {
			continue
		}
		clean := *b
		bookings = append(bookings, &clean)
	}
	return bookings, nil
}

func (r *memoryRepository) Update(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[b.ID]
	if !ok {
		return ErrNotFound
	}

	stored.StartTime = b.StartTime
	stored.EndTime = b.EndTime
	stored.Status = b.Status
	stored.TotalPrice = b.TotalPrice
	return nil
}

func (r *memoryRepository) HasOverlap(ctx context.Context, courtID string, start, end time.Time, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.byID {
		if b.CourtID != courtID || b.ID == excludeID || b.Status != StatusConfirmed {
			continue
		}
		// Half-open intervals: touching boundaries do not overlap.
		if start.Before(b.EndTime) && end.After(b.StartTime) {
			return true, nil
		}
	}
	return false, nil
}
