package court

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mattsff/courte-rental/internal/authz"
)

type CreateRequest struct {
	Name         string
	Type         string
	PricePerHour float64
	Description  *string
	Amenities    []string
}

// UpdateRequest is a partial merge: nil fields leave the stored value
// unchanged. The court ID is never overwritten.
type UpdateRequest struct {
	Name         *string
	Type         *string
	PricePerHour *float64
	IsAvailable  *bool
	Description  *string
	Amenities    *[]string
}

type Service interface {
	List(ctx context.Context) ([]*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	Create(ctx context.Context, req CreateRequest, actor authz.Actor) (*Court, error)
	Update(ctx context.Context, id string, req UpdateRequest, actor authz.Actor) (*Court, error)
	Delete(ctx context.Context, id string, actor authz.Actor) error
	AddImage(ctx context.Context, id, url string, actor authz.Actor) (*Court, error)
	UpsertMaintenanceWindow(ctx context.Context, id string, w MaintenanceWindow, actor authz.Actor) (*Court, error)
}

type service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With().Str("component", "court").Logger(),
	}
}

func (s *service) List(ctx context.Context) ([]*Court, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor authz.Actor) (*Court, error) {
	// Role check comes first: payload validity never matters for a
	// non-admin caller.
	if !authz.CanAdminister(actor) {
		return nil, ErrForbidden
	}

	if req.PricePerHour <= 0 {
		return nil, ErrInvalidPrice
	}

	c := &Court{
		Name:         strings.TrimSpace(req.Name),
		Type:         strings.TrimSpace(req.Type),
		PricePerHour: req.PricePerHour,
		IsAvailable:  true,
		Description:  req.Description,
		Amenities:    req.Amenities,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Str("court_id", c.ID).Msg("court created")
	return c, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actor authz.Actor) (*Court, error) {
	if !authz.CanAdminister(actor) {
		return nil, ErrForbidden
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		c.Type = strings.TrimSpace(*req.Type)
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour <= 0 {
			return nil, ErrInvalidPrice
		}
		c.PricePerHour = *req.PricePerHour
	}
	if req.IsAvailable != nil {
		c.IsAvailable = *req.IsAvailable
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Amenities != nil {
		c.Amenities = *req.Amenities
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string, actor authz.Actor) error {
	if !authz.CanAdminister(actor) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) AddImage(ctx context.Context, id, url string, actor authz.Actor) (*Court, error) {
	if !authz.CanAdminister(actor) {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyImageURL
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Images = append(c.Images, url)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpsertMaintenanceWindow(ctx context.Context, id string, w MaintenanceWindow, actor authz.Actor) (*Court, error) {
	if !authz.CanAdminister(actor) {
		return nil, ErrForbidden
	}

	if !w.EndTime.After(w.StartTime) {
		return nil, ErrInvalidWindow
	}
	if w.Status == "" {
		w.Status = MaintenanceScheduled
	}
	if !ValidMaintenanceStatus(w.Status) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	w.CourtID = id
	if err := s.repo.UpsertWindow(ctx, &w); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
