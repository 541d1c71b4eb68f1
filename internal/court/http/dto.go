package http

import (
	"time"

	"github.com/mattsff/courte-rental/internal/court"
)

// CreateCourtBody is the payload for POST /courts.
type CreateCourtBody struct {
	Name         string   `json:"name" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	PricePerHour float64  `json:"price_per_hour" binding:"required"`
	Description  *string  `json:"description"`
	Amenities    []string `json:"amenities"`
}

// UpdateCourtBody is the payload for PUT /courts/:id. Absent fields leave
// the stored values unchanged.
type UpdateCourtBody struct {
	Name         *string   `json:"name"`
	Type         *string   `json:"type"`
	PricePerHour *float64  `json:"price_per_hour"`
	IsAvailable  *bool     `json:"is_available"`
	Description  *string   `json:"description"`
	Amenities    *[]string `json:"amenities"`
}

// MaintenanceWindowBody is the payload for PUT /courts/:id/maintenance.
// An empty id appends a new window; a known id replaces it.
type MaintenanceWindowBody struct {
	ID          string    `json:"id" binding:"omitempty,uuid"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Status      string    `json:"status" binding:"omitempty,oneof=scheduled in-progress completed"`
}

type MaintenanceWindowResponse struct {
	ID          string    `json:"id"`
	CourtID     string    `json:"court_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

type CourtResponse struct {
	ID                  string                      `json:"id"`
	Name                string                      `json:"name"`
	Type                string                      `json:"type"`
	PricePerHour        float64                     `json:"price_per_hour"`
	IsAvailable         bool                        `json:"is_available"`
	Description         *string                     `json:"description,omitempty"`
	Images              []string                    `json:"images"`
	Amenities           []string                    `json:"amenities"`
	MaintenanceSchedule []MaintenanceWindowResponse `json:"maintenance_schedule"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	images := c.Images
	if images == nil {
		images = []string{}
	}
	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	windows := make([]MaintenanceWindowResponse, len(c.MaintenanceSchedule))
	for i, w := range c.MaintenanceSchedule {
		windows[i] = MaintenanceWindowResponse{
			ID:          w.ID,
			CourtID:     w.CourtID,
			StartTime:   w.StartTime,
			EndTime:     w.EndTime,
			Description: w.Description,
			Status:      string(w.Status),
		}
	}

	return CourtResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Type:                c.Type,
		PricePerHour:        c.PricePerHour,
		IsAvailable:         c.IsAvailable,
		Description:         c.Description,
		Images:              images,
		Amenities:           amenities,
		MaintenanceSchedule: windows,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
