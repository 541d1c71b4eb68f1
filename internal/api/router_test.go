package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsff/courte-rental/internal/auth"
	"github.com/mattsff/courte-rental/internal/authz"
	"github.com/mattsff/courte-rental/internal/booking"
	bookingHttp "github.com/mattsff/courte-rental/internal/booking/http"
	"github.com/mattsff/courte-rental/internal/config"
	"github.com/mattsff/courte-rental/internal/court"
	courtHttp "github.com/mattsff/courte-rental/internal/court/http"
	"github.com/mattsff/courte-rental/internal/pkg/storage"
	"github.com/mattsff/courte-rental/internal/user"
	userHttp "github.com/mattsff/courte-rental/internal/user/http"
)

type testEnv struct {
	router   *gin.Engine
	jwt      *auth.JWTManager
	userRepo user.Repository
	hasher   auth.PasswordHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	userRepo := user.NewMemoryRepository()
	courtRepo := court.NewMemoryRepository()
	bookingRepo := booking.NewMemoryRepository()

	logger := zerolog.Nop()
	userService := user.NewService(userRepo, hasher, logger)
	courtService := court.NewService(courtRepo, logger)
	bookingService := booking.NewService(bookingRepo, courtService, logger)

	uploadDir := t.TempDir()
	files, err := storage.NewLocalStorage(uploadDir)
	require.NoError(t, err)

	router := NewRouter(Config{
		UploadDir:      uploadDir,
		UserService:    userService,
		CourtService:   courtService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
		Files:          files,
		ImageProcessor: storage.NewImageProcessor(),
		RateLimit:      config.RateLimitConfig{Enabled: false},
		Logger:         logger,
	})

	return &testEnv{
		router:   router,
		jwt:      jwtManager,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// execute sends a JSON request through the router and records the response.
func (e *testEnv) execute(t *testing.T, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createAdmin seeds an admin directly in the repository, since
// registration only ever produces regular users.
func (e *testEnv) createAdmin(t *testing.T) string {
	t.Helper()

	hash, err := e.hasher.Hash("adminpass123")
	require.NoError(t, err)

	admin := &user.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Name:         "Admin",
		Role:         authz.RoleAdmin,
	}
	require.NoError(t, e.userRepo.Create(context.Background(), admin))

	token, err := e.jwt.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role))
	require.NoError(t, err)
	return token
}

// registerUser registers a user through the API and returns the token
// and user ID.
func (e *testEnv) registerUser(t *testing.T, email string) (string, string) {
	t.Helper()

	w := e.execute(t, "POST", "/users/register", userHttp.RegisterBody{
		Email:    email,
		Password: "password123",
		Name:     "Player",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp userHttp.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// createCourt creates a court as admin and returns its ID.
func (e *testEnv) createCourt(t *testing.T, adminToken string, pricePerHour float64) string {
	t.Helper()

	w := e.execute(t, "POST", "/courts", courtHttp.CreateCourtBody{
		Name:         "Court 1",
		Type:         "tennis",
		PricePerHour: pricePerHour,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp courtHttp.CourtResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func ts(hour int) time.Time {
	return time.Date(2026, 9, 10, hour, 0, 0, 0, time.UTC)
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	var token string

	t.Run("Register", func(t *testing.T) {
		w := env.execute(t, "POST", "/users/register", userHttp.RegisterBody{
			Email:    "player@example.com",
			Password: "password123",
			Name:     "Player One",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp userHttp.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user", resp.User.Role)
		token = resp.Token
	})

	t.Run("Duplicate Email Is Bad Request", func(t *testing.T) {
		w := env.execute(t, "POST", "/users/register", userHttp.RegisterBody{
			Email:    "player@example.com",
			Password: "password456",
			Name:     "Impostor",
		}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login", func(t *testing.T) {
		w := env.execute(t, "POST", "/users/login", userHttp.LoginBody{
			Email:    "player@example.com",
			Password: "password123",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp userHttp.AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("Bad Credentials Are Bad Request", func(t *testing.T) {
		wWrong := env.execute(t, "POST", "/users/login", userHttp.LoginBody{
			Email:    "player@example.com",
			Password: "wrongpassword",
		}, "")
		wGhost := env.execute(t, "POST", "/users/login", userHttp.LoginBody{
			Email:    "ghost@example.com",
			Password: "password123",
		}, "")

		assert.Equal(t, http.StatusBadRequest, wWrong.Code)
		assert.Equal(t, http.StatusBadRequest, wGhost.Code, "unknown email must look exactly like a wrong password")
	})

	t.Run("Get Me", func(t *testing.T) {
		w := env.execute(t, "GET", "/users/me", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp userHttp.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "player@example.com", resp.Email)
	})

	t.Run("Update Me", func(t *testing.T) {
		name := "Renamed Player"
		w := env.execute(t, "PUT", "/users/me", userHttp.UpdateMeBody{Name: &name}, token)
		require.Equal(t, http.StatusOK, w.Code)

		var resp userHttp.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Renamed Player", resp.Name)
	})

	t.Run("Missing Token", func(t *testing.T) {
		w := env.execute(t, "GET", "/users/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		w := env.execute(t, "GET", "/users/me", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCourtEndpoints(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.createAdmin(t)
	userToken, _ := env.registerUser(t, "member@example.com")

	t.Run("List Is Public", func(t *testing.T) {
		w := env.execute(t, "GET", "/courts", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Non-Admin Create Is Forbidden", func(t *testing.T) {
		w := env.execute(t, "POST", "/courts", courtHttp.CreateCourtBody{
			Name:         "Rogue Court",
			Type:         "squash",
			PricePerHour: 10,
		}, userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	courtID := env.createCourt(t, adminToken, 12.5)

	t.Run("Get By ID Is Public", func(t *testing.T) {
		w := env.execute(t, "GET", "/courts/"+courtID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp courtHttp.CourtResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 12.5, resp.PricePerHour)
		assert.True(t, resp.IsAvailable)
	})

	t.Run("Invalid UUID Is Bad Request", func(t *testing.T) {
		w := env.execute(t, "GET", "/courts/not-a-uuid", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Admin Partial Update", func(t *testing.T) {
		price := 20.0
		w := env.execute(t, "PUT", "/courts/"+courtID, courtHttp.UpdateCourtBody{
			PricePerHour: &price,
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp courtHttp.CourtResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 20.0, resp.PricePerHour)
		assert.Equal(t, "Court 1", resp.Name, "absent fields stay unchanged")
	})

	t.Run("Maintenance Window Defaults To Scheduled", func(t *testing.T) {
		w := env.execute(t, "PUT", "/courts/"+courtID+"/maintenance", courtHttp.MaintenanceWindowBody{
			StartTime:   ts(8),
			EndTime:     ts(10),
			Description: "net replacement",
		}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp courtHttp.CourtResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.MaintenanceSchedule, 1)
		assert.Equal(t, "scheduled", resp.MaintenanceSchedule[0].Status)
	})

	t.Run("Non-Admin Delete Is Forbidden", func(t *testing.T) {
		w := env.execute(t, "DELETE", "/courts/"+courtID, nil, userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin Delete", func(t *testing.T) {
		w := env.execute(t, "DELETE", "/courts/"+courtID, nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		wGet := env.execute(t, "GET", "/courts/"+courtID, nil, "")
		assert.Equal(t, http.StatusNotFound, wGet.Code)
	})
}

func TestBookingEndpoints(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.createAdmin(t)
	aliceToken, aliceID := env.registerUser(t, "alice@example.com")
	bobToken, _ := env.registerUser(t, "bob@example.com")

	courtID := env.createCourt(t, adminToken, 10)

	var bookingID string

	t.Run("Create Booking Prices By Duration", func(t *testing.T) {
		w := env.execute(t, "POST", "/bookings", bookingHttp.CreateBookingBody{
			CourtID:   courtID,
			StartTime: ts(10),
			EndTime:   ts(10).Add(90 * time.Minute),
		}, aliceToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, aliceID, resp.UserID, "owner comes from the token")
		assert.Equal(t, "confirmed", resp.Status)
		assert.InDelta(t, 15.0, resp.TotalPrice, 1e-9)
		bookingID = resp.ID
	})

	t.Run("Overlap Is Conflict", func(t *testing.T) {
		w := env.execute(t, "POST", "/bookings", bookingHttp.CreateBookingBody{
			CourtID:   courtID,
			StartTime: ts(11),
			EndTime:   ts(12),
		}, bobToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unknown Court Is Not Found", func(t *testing.T) {
		w := env.execute(t, "POST", "/bookings", bookingHttp.CreateBookingBody{
			CourtID:   "44444444-4444-4444-4444-444444444444",
			StartTime: ts(10),
			EndTime:   ts(11),
		}, bobToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Inverted Interval Is Bad Request", func(t *testing.T) {
		w := env.execute(t, "POST", "/bookings", bookingHttp.CreateBookingBody{
			CourtID:   courtID,
			StartTime: ts(15),
			EndTime:   ts(14),
		}, bobToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Requires Authentication", func(t *testing.T) {
		w := env.execute(t, "GET", "/bookings", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Owner Lists Only Own", func(t *testing.T) {
		w := env.execute(t, "GET", "/bookings", nil, bobToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp, "bob has no bookings")
	})

	t.Run("Admin Lists All", func(t *testing.T) {
		w := env.execute(t, "GET", "/bookings", nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("Non-Owner Read Looks Like Not Found", func(t *testing.T) {
		w := env.execute(t, "GET", "/bookings/"+bookingID, nil, bobToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Owner And ID Survive A Hostile Patch", func(t *testing.T) {
		// id and user_id in the payload must be silently ignored.
		w := env.execute(t, "PUT", "/bookings/"+bookingID, gin.H{
			"id":       "55555555-5555-5555-5555-555555555555",
			"user_id":  "66666666-6666-6666-6666-666666666666",
			"end_time": ts(12),
		}, aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, bookingID, resp.ID)
		assert.Equal(t, aliceID, resp.UserID)
		assert.InDelta(t, 20.0, resp.TotalPrice, 1e-9, "moving the end re-prices the booking")
	})

	t.Run("Cancel Returns The Booking", func(t *testing.T) {
		w := env.execute(t, "DELETE", "/bookings/"+bookingID, nil, aliceToken)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cancelled", resp.Status)
	})

	t.Run("Cancel Twice Is Fine", func(t *testing.T) {
		w := env.execute(t, "DELETE", "/bookings/"+bookingID, nil, aliceToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Cancelled Slot Can Be Rebooked", func(t *testing.T) {
		w := env.execute(t, "POST", "/bookings", bookingHttp.CreateBookingBody{
			CourtID:   courtID,
			StartTime: ts(10),
			EndTime:   ts(11),
		}, bobToken)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Invalid UUID Is Bad Request", func(t *testing.T) {
		w := env.execute(t, "GET", "/bookings/not-a-uuid", nil, aliceToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.execute(t, "GET", "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
