package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/mattsff/courte-rental/internal/authz"
	"github.com/mattsff/courte-rental/internal/court"
	"github.com/mattsff/courte-rental/internal/metrics"
)

type CreateRequest struct {
	UserID    string
	CourtID   string
	StartTime time.Time
	EndTime   time.Time
}

// UpdateRequest patches a booking's interval and/or status. The booking's
// ID and owner are immutable: the patch simply has no way to carry them.
type UpdateRequest struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

type Service interface {
	List(ctx context.Context, actor authz.Actor) ([]*Booking, error)
	GetByID(ctx context.Context, id string, actor authz.Actor) (*Booking, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor authz.Actor) (*Booking, error)
	Cancel(ctx context.Context, id string, actor authz.Actor) (*Booking, error)
}

type service struct {
	repo     Repository
	courtSvc court.Service
	locks    *courtLocks
	logger   zerolog.Logger
}

func NewService(repo Repository, courtSvc court.Service, logger zerolog.Logger) Service {
	return &service{
		repo:     repo,
		courtSvc: courtSvc,
		locks:    newCourtLocks(),
		logger:   logger.With().Str("component", "booking").Logger(),
	}
}

// List returns every booking for admins and only the actor's own bookings
// otherwise, in insertion order.
func (s *service) List(ctx context.Context, actor authz.Actor) ([]*Booking, error) {
	if authz.CanAdminister(actor) {
		return s.repo.List(ctx, "")
	}
	return s.repo.List(ctx, actor.ID)
}

// GetByID hides bookings the actor may not see behind the same NotFound
// as truly absent ones, so responses never reveal whether a booking
// exists.
func (s *service) GetByID(ctx context.Context, id string, actor authz.Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccess(actor, b.UserID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	ct, err := s.courtSvc.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}

	// Hold the court's lock across check and write so concurrent
	// requests for the same court are serialized.
	unlock := s.locks.Lock(req.CourtID)
	defer unlock()

	hasOverlap, err := s.repo.HasOverlap(ctx, req.CourtID, req.StartTime, req.EndTime, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		metrics.IncBookingConflict()
		return nil, ErrTimeConflict
	}

	b := &Booking{
		CourtID:    req.CourtID,
		UserID:     req.UserID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     StatusConfirmed,
		TotalPrice: price(ct.PricePerHour, req.StartTime, req.EndTime),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", b.ID).
		Str("court_id", b.CourtID).
		Float64("total_price", b.TotalPrice).
		Msg("booking created")

	return b, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor authz.Actor) (*Booking, error) {
	b, err := s.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	newStart := b.StartTime
	newEnd := b.EndTime
	timeChanged := false

	if req.StartTime != nil {
		newStart = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		newEnd = *req.EndTime
		timeChanged = true
	}

	if timeChanged {
		if !newEnd.After(newStart) {
			return nil, ErrInvalidTimeRange
		}

		unlock := s.locks.Lock(b.CourtID)
		defer unlock()

		hasOverlap, err := s.repo.HasOverlap(ctx, b.CourtID, newStart, newEnd, b.ID)
		if err != nil {
			return nil, err
		}
		if hasOverlap {
			metrics.IncBookingConflict()
			return nil, ErrTimeConflict
		}

		ct, err := s.courtSvc.GetByID(ctx, b.CourtID)
		if err != nil {
			return nil, err
		}

		b.StartTime = newStart
		b.EndTime = newEnd
		// The price is derived from the interval, so a moved booking is
		// re-priced at the court's current rate.
		b.TotalPrice = price(ct.PricePerHour, newStart, newEnd)
	}

	if req.Status != nil {
		st := Status(*req.Status)
		if !ValidStatus(st) {
			return nil, ErrInvalidStatus
		}
		b.Status = st
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Cancel marks a booking cancelled. Bookings are never removed, and
// cancelling an already-cancelled booking succeeds unchanged.
func (s *service) Cancel(ctx context.Context, id string, actor authz.Actor) (*Booking, error) {
	b, err := s.GetByID(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if b.Status == StatusCancelled {
		return b, nil
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info().Str("booking_id", b.ID).Msg("booking cancelled")
	return b, nil
}

// price computes the derived total: hourly rate times the real-valued
// duration in hours. No rounding, no minimum.
func price(ratePerHour float64, start, end time.Time) float64 {
	return ratePerHour * end.Sub(start).Hours()
}
