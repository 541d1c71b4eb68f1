package court

import (
	"net/http"
	"time"

	"github.com/mattsff/courte-rental/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "court not found")
	ErrForbidden     = apperror.New(http.StatusForbidden, "admin access required")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "price per hour must be positive")
	ErrInvalidWindow = apperror.New(http.StatusBadRequest, "maintenance start time must be before end time")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid maintenance status")
	ErrEmptyImageURL = apperror.New(http.StatusBadRequest, "image url cannot be empty")
)

// MaintenanceStatus is the lifecycle state of a maintenance window.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

// ValidMaintenanceStatus reports whether s is a known status value.
func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	return s == MaintenanceScheduled || s == MaintenanceInProgress || s == MaintenanceCompleted
}

// MaintenanceWindow is an admin-managed downtime entry attached to a
// court. Its lifecycle is driven by explicit calls, never derived from
// bookings. JSON tags exist for the json_agg scan in the pgx repository.
type MaintenanceWindow struct {
	ID          string            `json:"id"`
	CourtID     string            `json:"court_id"`
	StartTime   time.Time         `json:"start_time"`
	EndTime     time.Time         `json:"end_time"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
}

// Court is a bookable asset with an hourly rate.
type Court struct {
	ID                  string
	Name                string
	Type                string
	PricePerHour        float64
	IsAvailable         bool
	Description         *string
	Images              []string
	Amenities           []string
	MaintenanceSchedule []MaintenanceWindow
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
