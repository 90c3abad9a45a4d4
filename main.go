package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/emsdev/ems_backend/config"
	"github.com/emsdev/ems_backend/middleware"
	"github.com/emsdev/ems_backend/routes"
	"github.com/emsdev/ems_backend/security"
	"github.com/emsdev/ems_backend/utils"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Connect to Redis (sessions degrade gracefully if unavailable)
	config.ConnectRedis()
	defer config.CloseRedis()
	sessions := security.NewSessionStore(config.GetRedisClient())

	// Connect to database
	client := config.ConnectDB()

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true

	// Initialize custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(middleware.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "EMS Backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", healthHandler(client))

	// Register routes
	routes.RegisterAuthRoutes(e, client, sessions)
	routes.RegisterDepartmentRoutes(e, client, sessions)
	routes.RegisterEmployeeRoutes(e, client, sessions)
	routes.RegisterSalaryRoutes(e, client, sessions)

	// Ensure uploads directory exists
	if err := utils.InitializeStorage(); err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}

type databasePinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// healthHandler reports liveness; the database claim comes from an actual
// ping, answered 503 when the store is unreachable.
func healthHandler(db databasePinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx, nil); err != nil {
			return c.JSON(503, map[string]string{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}

		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	}
}
