package booking

import (
	"net/http"
	"time"

	"github.com/mattsff/courte-rental/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "court is already booked for this time")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrCourtNotFound    = apperror.New(http.StatusNotFound, "court not found")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s Status) bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusCompleted
}

// Booking is a time-bounded claim on a court. Intervals are half-open:
// [StartTime, EndTime). TotalPrice is derived from the court's hourly
// rate and written only by the booking service.
type Booking struct {
	ID         string
	CourtID    string
	UserID     string
	StartTime  time.Time
	EndTime    time.Time
	Status     Status
	TotalPrice float64
	CreatedAt  time.Time
}
