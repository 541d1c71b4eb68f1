package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mattsff/courte-rental/internal/auth"
	"github.com/mattsff/courte-rental/internal/booking"
	bookingHttp "github.com/mattsff/courte-rental/internal/booking/http"
	"github.com/mattsff/courte-rental/internal/config"
	"github.com/mattsff/courte-rental/internal/court"
	courtHttp "github.com/mattsff/courte-rental/internal/court/http"
	"github.com/mattsff/courte-rental/internal/metrics"
	"github.com/mattsff/courte-rental/internal/pkg/storage"
	"github.com/mattsff/courte-rental/internal/ratelimit"
	"github.com/mattsff/courte-rental/internal/user"
	userHttp "github.com/mattsff/courte-rental/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UploadDir      string
	UserService    user.Service
	CourtService   court.Service
	BookingService booking.Service
	JWTManager     *auth.JWTManager
	Files          storage.Storage
	ImageProcessor *storage.ImageProcessor
	RedisClient    *redis.Client
	RateLimit      config.RateLimitConfig
	Logger         zerolog.Logger
}

// NewRouter assembles middleware (CORS, logging, metrics, recovery) and
// registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	metrics.Register()
	r.Use(metrics.RequestCounter())

	// Configure CORS.
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware validates the bearer token and recovers the actor.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// rateLimitMiddleware guards credential endpoints; no-op without Redis.
	rateLimitMiddleware := ratelimit.NewTokenBucket(cfg.RateLimit, cfg.RedisClient)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	courtHandler := courtHttp.NewHandler(cfg.CourtService, cfg.Files, cfg.ImageProcessor)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler, authMiddleware, rateLimitMiddleware)
		courtHttp.RegisterRoutes(root, courtHandler, authMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, authMiddleware)
	}

	// Uploaded court photos are served statically.
	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	return r
}
