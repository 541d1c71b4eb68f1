package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mattsff/courte-rental/internal/api"
	"github.com/mattsff/courte-rental/internal/auth"
	"github.com/mattsff/courte-rental/internal/booking"
	"github.com/mattsff/courte-rental/internal/config"
	"github.com/mattsff/courte-rental/internal/court"
	"github.com/mattsff/courte-rental/internal/pkg/storage"
	"github.com/mattsff/courte-rental/internal/user"
)

// Config holds the dependencies and settings required to start the
// application. DBPool may be nil when the memory backend is selected;
// RedisClient may be nil, which disables rate limiting.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	UploadDir    string
	DBPool       *pgxpool.Pool
	RedisClient  *redis.Client
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	RateLimit    config.RateLimitConfig
	Logger       zerolog.Logger
}

// Container holds the initialized components needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer wires repositories, services and the router.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Repositories: postgres when a pool is provided, in-memory otherwise.
	var (
		userRepo    user.Repository
		courtRepo   court.Repository
		bookingRepo booking.Repository
	)
	if cfg.DBPool != nil {
		userRepo = user.NewPgxRepository(cfg.DBPool)
		courtRepo = court.NewPgxRepository(cfg.DBPool)
		bookingRepo = booking.NewPgxRepository(cfg.DBPool)
	} else {
		userRepo = user.NewMemoryRepository()
		courtRepo = court.NewMemoryRepository()
		bookingRepo = booking.NewMemoryRepository()
	}

	// Services
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger)
	courtService := court.NewService(courtRepo, cfg.Logger)
	bookingService := booking.NewService(bookingRepo, courtService, cfg.Logger)

	// Upload storage for court photos
	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UploadDir:      cfg.UploadDir,
		UserService:    userService,
		CourtService:   courtService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
		Files:          files,
		ImageProcessor: storage.NewImageProcessor(),
		RedisClient:    cfg.RedisClient,
		RateLimit:      cfg.RateLimit,
		Logger:         cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
