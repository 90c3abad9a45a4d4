package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsdev/ems_backend/controllers"
	"github.com/emsdev/ems_backend/middleware"
	"github.com/emsdev/ems_backend/security"
)

// RegisterAuthRoutes sets up authentication and password reset routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, sessions *security.SessionStore) {
	authController := controllers.NewAuthController(db, sessions)
	passwordController := controllers.NewPasswordController(db)

	// Public authentication routes
	e.POST("/api/auth/register", authController.Register)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/forget-password", passwordController.ForgetPassword)
	e.POST("/api/auth/verify-otp", passwordController.VerifyOTP)
	e.POST("/api/auth/reset-password", passwordController.ResetPassword)

	// Routes that require a valid token
	protected := e.Group("/api/auth")
	protected.Use(middleware.JWTMiddleware(sessions))
	protected.GET("/me", authController.Me)
	protected.POST("/profile-image", authController.UploadProfileImage)
	protected.POST("/change-password", authController.ChangePassword)
	protected.POST("/logout", authController.Logout)
}
