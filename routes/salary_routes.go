package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsdev/ems_backend/controllers"
	"github.com/emsdev/ems_backend/middleware"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/security"
)

// RegisterSalaryRoutes sets up salary CRUD routes. Reads are open to any
// authenticated user; mutations are admin-only.
func RegisterSalaryRoutes(e *echo.Echo, db *mongo.Client, sessions *security.SessionStore) {
	salaryController := controllers.NewSalaryController(db)

	salary := e.Group("/api/salary")
	salary.Use(middleware.JWTMiddleware(sessions))

	salary.GET("", salaryController.GetSalaries)
	salary.GET("/:id", salaryController.GetSalary)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	salary.POST("/add", salaryController.AddSalary, adminOnly)
	salary.PUT("/:id", salaryController.UpdateSalary, adminOnly)
	salary.DELETE("/:id", salaryController.DeleteSalary, adminOnly)
}
