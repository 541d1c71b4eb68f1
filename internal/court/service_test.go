package court

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsff/courte-rental/internal/authz"
)

var (
	admin  = authz.Actor{ID: "admin-id", Email: "admin@example.com", Role: authz.RoleAdmin}
	member = authz.Actor{ID: "member-id", Email: "member@example.com", Role: authz.RoleUser}
)

func newTestCourtService() Service {
	return NewService(NewMemoryRepository(), zerolog.Nop())
}

func createCourt(t *testing.T, svc Service) *Court {
	t.Helper()
	c, err := svc.Create(context.Background(), CreateRequest{
		Name:         "Court A",
		Type:         "padel",
		PricePerHour: 15,
		Amenities:    []string{"lights"},
	}, admin)
	require.NoError(t, err)
	return c
}

func TestCreateCourt(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourtService()

	t.Run("Admin Creates With Defaults", func(t *testing.T) {
		c := createCourt(t, svc)
		assert.NotEmpty(t, c.ID)
		assert.True(t, c.IsAvailable, "new courts should be available")
		assert.Equal(t, "padel", c.Type)
	})

	t.Run("Non-Admin Is Forbidden Before Validation", func(t *testing.T) {
		// Invalid price, but the role check must win.
		_, err := svc.Create(ctx, CreateRequest{Name: "X", PricePerHour: -1}, member)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Rejects Non-Positive Price", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{Name: "X", PricePerHour: 0}, admin)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestUpdateCourt(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial Merge Leaves Absent Fields Unchanged", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		newPrice := 25.0
		updated, err := svc.Update(ctx, c.ID, UpdateRequest{PricePerHour: &newPrice}, admin)
		require.NoError(t, err)

		assert.Equal(t, 25.0, updated.PricePerHour)
		assert.Equal(t, c.Name, updated.Name)
		assert.Equal(t, c.Type, updated.Type)
		assert.Equal(t, c.Amenities, updated.Amenities)
	})

	t.Run("Rejects Non-Positive Price", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		bad := -5.0
		_, err := svc.Update(ctx, c.ID, UpdateRequest{PricePerHour: &bad}, admin)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("Non-Admin Is Forbidden", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		name := "Hijacked"
		_, err := svc.Update(ctx, c.ID, UpdateRequest{Name: &name}, member)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Unknown Court", func(t *testing.T) {
		svc := newTestCourtService()
		name := "X"
		_, err := svc.Update(ctx, "22222222-2222-2222-2222-222222222222", UpdateRequest{Name: &name}, admin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteCourt(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourtService()
	c := createCourt(t, svc)

	t.Run("Non-Admin Is Forbidden", func(t *testing.T) {
		err := svc.Delete(ctx, c.ID, member)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Admin Deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, c.ID, admin))
		_, err := svc.GetByID(ctx, c.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAddImage(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourtService()
	c := createCourt(t, svc)

	t.Run("Appends URL", func(t *testing.T) {
		updated, err := svc.AddImage(ctx, c.ID, "/uploads/courts/a.jpg", admin)
		require.NoError(t, err)
		assert.Equal(t, []string{"/uploads/courts/a.jpg"}, updated.Images)
	})

	t.Run("Rejects Blank URL", func(t *testing.T) {
		_, err := svc.AddImage(ctx, c.ID, "   ", admin)
		assert.ErrorIs(t, err, ErrEmptyImageURL)
	})

	t.Run("Non-Admin Is Forbidden", func(t *testing.T) {
		_, err := svc.AddImage(ctx, c.ID, "/uploads/courts/b.jpg", member)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestMaintenanceWindows(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Insert Then Update In Place", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		updated, err := svc.UpsertMaintenanceWindow(ctx, c.ID, MaintenanceWindow{
			StartTime:   day.Add(8 * time.Hour),
			EndTime:     day.Add(10 * time.Hour),
			Description: "resurfacing",
		}, admin)
		require.NoError(t, err)
		require.Len(t, updated.MaintenanceSchedule, 1)

		w := updated.MaintenanceSchedule[0]
		assert.NotEmpty(t, w.ID)
		assert.Equal(t, MaintenanceScheduled, w.Status, "status should default to scheduled")

		// Same window ID updates rather than appends.
		w.Status = MaintenanceCompleted
		updated, err = svc.UpsertMaintenanceWindow(ctx, c.ID, w, admin)
		require.NoError(t, err)
		require.Len(t, updated.MaintenanceSchedule, 1)
		assert.Equal(t, MaintenanceCompleted, updated.MaintenanceSchedule[0].Status)
	})

	t.Run("New Window Appends", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		_, err := svc.UpsertMaintenanceWindow(ctx, c.ID, MaintenanceWindow{
			StartTime: day.Add(8 * time.Hour),
			EndTime:   day.Add(10 * time.Hour),
		}, admin)
		require.NoError(t, err)

		updated, err := svc.UpsertMaintenanceWindow(ctx, c.ID, MaintenanceWindow{
			StartTime: day.Add(12 * time.Hour),
			EndTime:   day.Add(13 * time.Hour),
		}, admin)
		require.NoError(t, err)
		assert.Len(t, updated.MaintenanceSchedule, 2)
	})

	t.Run("Rejects Inverted Window", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		_, err := svc.UpsertMaintenanceWindow(ctx, c.ID, MaintenanceWindow{
			StartTime: day.Add(10 * time.Hour),
			EndTime:   day.Add(8 * time.Hour),
		}, admin)
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("Rejects Unknown Status", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		_, err := svc.UpsertMaintenanceWindow(ctx, c.ID, MaintenanceWindow{
			StartTime: day.Add(8 * time.Hour),
			EndTime:   day.Add(10 * time.Hour),
			Status:    "paused",
		}, admin)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Non-Admin Is Forbidden", func(t *testing.T) {
		svc := newTestCourtService()
		c := createCourt(t, svc)

		_, err := svc.UpsertMaintenanceWindow(ctx, c.ID, MaintenanceWindow{
			StartTime: day.Add(8 * time.Hour),
			EndTime:   day.Add(10 * time.Hour),
		}, member)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestListCourtsPublic(t *testing.T) {
	ctx := context.Background()
	svc := newTestCourtService()

	first := createCourt(t, svc)
	second := createCourt(t, svc)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
