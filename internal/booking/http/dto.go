package http

import (
	"time"

	"github.com/mattsff/courte-rental/internal/booking"
)

// CreateBookingBody is the payload for POST /bookings. The owner comes
// from the bearer token, never from the body.
type CreateBookingBody struct {
	CourtID   string    `json:"court_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// UpdateBookingBody is the payload for PUT /bookings/:id. Immutable
// fields (id, user_id) simply do not bind.
type UpdateBookingBody struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" binding:"omitempty,oneof=confirmed cancelled completed"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	CourtID    string    `json:"court_id"`
	UserID     string    `json:"user_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		CourtID:    b.CourtID,
		UserID:     b.UserID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Status:     string(b.Status),
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
	}
}
