package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsdev/ems_backend/controllers"
	"github.com/emsdev/ems_backend/middleware"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/security"
)

// RegisterDepartmentRoutes sets up department CRUD routes. Reads are open to
// any authenticated user; mutations are admin-only.
func RegisterDepartmentRoutes(e *echo.Echo, db *mongo.Client, sessions *security.SessionStore) {
	departmentController := controllers.NewDepartmentController(db)

	department := e.Group("/api/department")
	department.Use(middleware.JWTMiddleware(sessions))

	department.GET("", departmentController.GetDepartments)
	department.GET("/:id", departmentController.GetDepartment)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	department.POST("/add", departmentController.AddDepartment, adminOnly)
	department.PUT("/:id", departmentController.UpdateDepartment, adminOnly)
	department.DELETE("/:id", departmentController.DeleteDepartment, adminOnly)
}
