package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsdev/ems_backend/controllers"
	"github.com/emsdev/ems_backend/middleware"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/security"
)

// RegisterEmployeeRoutes sets up employee CRUD routes. Reads are open to any
// authenticated user; mutations are admin-only.
func RegisterEmployeeRoutes(e *echo.Echo, db *mongo.Client, sessions *security.SessionStore) {
	employeeController := controllers.NewEmployeeController(db)

	employee := e.Group("/api/employee")
	employee.Use(middleware.JWTMiddleware(sessions))

	employee.GET("", employeeController.GetEmployees)
	employee.GET("/:id", employeeController.GetEmployee)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	employee.POST("/add", employeeController.AddEmployee, adminOnly)
	employee.PUT("/:id", employeeController.UpdateEmployee, adminOnly)
	employee.DELETE("/:id", employeeController.DeleteEmployee, adminOnly)
}
