package court

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRepository is a mutex-guarded in-memory Repository. Courts keep
// insertion order for listing.
type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*Court
	order []string
}

// NewMemoryRepository creates an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID: make(map[string]*Court),
	}
}

func (r *memoryRepository) Create(ctx context.Context, c *Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	r.byID[c.ID] = copyCourt(c)
	r.order = append(r.order, c.ID)
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCourt(c), nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courts := make([]*Court, 0, len(r.order))
	for _, id := range r.order {
		courts = append(courts, copyCourt(r.byID[id]))
	}
	return courts, nil
}

func (r *memoryRepository) Update(ctx context.Context, c *Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[c.ID]
	if !ok {
		return ErrNotFound
	}

	updated := copyCourt(c)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	updated.MaintenanceSchedule = stored.MaintenanceSchedule
	r.byID[c.ID] = updated
	c.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) UpsertWindow(ctx context.Context, w *MaintenanceWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[w.CourtID]
	if !ok {
		return ErrNotFound
	}

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	for i, existing := range c.MaintenanceSchedule {
		if existing.ID == w.ID {
			c.MaintenanceSchedule[i] = *w
			return nil
		}
	}
	c.MaintenanceSchedule = append(c.MaintenanceSchedule, *w)
	return nil
}

func copyCourt(c *Court) *Court {
	clean := *c
	clean.Images = append([]string(nil), c.Images...)
	clean.Amenities = append([]string(nil), c.Amenities...)
	clean.MaintenanceSchedule = append([]MaintenanceWindow(nil), c.MaintenanceSchedule...)
	return &clean
}
