// controllers/department_controller.go
package controllers

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emsdev/ems_backend/config"
	"github.com/emsdev/ems_backend/models"
)

// DepartmentController contains department CRUD logic
type DepartmentController struct {
	DB *mongo.Client
}

// NewDepartmentController creates a new department controller
func NewDepartmentController(db *mongo.Client) *DepartmentController {
	return &DepartmentController{DB: db}
}

func (dc *DepartmentController) collection() *mongo.Collection {
	return config.GetCollection(dc.DB, "departments")
}

// AddDepartment handler creates a department
func (dc *DepartmentController) AddDepartment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.DepartmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	req.DepartmentName = strings.TrimSpace(req.DepartmentName)
	req.Description = strings.TrimSpace(req.Description)

	if req.DepartmentName == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Department name and description are required"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Department name must be at least 3 characters and description at least 10"))
	}

	count, err := dc.collection().CountDocuments(ctx, bson.M{"departmentName": req.DepartmentName})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check department"))
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.NewError("Department already exists"))
	}

	department := models.Department{
		DepartmentName: req.DepartmentName,
		Description:    req.Description,
		CreatedAt:      time.Now(),
	}

	result, err := dc.collection().InsertOne(ctx, department)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to create department"))
	}
	department.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, echo.Map{
		"success":    true,
		"message":    "Department added successfully",
		"department": department,
	})
}

// GetDepartments handler lists departments with pagination and name search
func (dc *DepartmentController) GetDepartments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := paginationParams(c)
	search := c.QueryParam("search")

	filter := bson.M{}
	if search != "" {
		filter["departmentName"] = bson.M{
			"$regex":   regexp.QuoteMeta(search),
			"$options": "i",
		}
	}

	totalCount, err := dc.collection().CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to count departments"))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := dc.collection().Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch departments"))
	}
	defer cursor.Close(ctx)

	departments := []models.Department{}
	if err := cursor.All(ctx, &departments); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to decode departments"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"pagination":  models.NewPagination(page, limit, totalCount),
		"count":       len(departments),
		"departments": departments,
	})
}

// GetDepartment handler reads a single department
func (dc *DepartmentController) GetDepartment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid department ID"))
	}

	var department models.Department
	err = dc.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Department not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch department"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"department": department,
	})
}

// UpdateDepartment handler re-validates and updates a department
func (dc *DepartmentController) UpdateDepartment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid department ID"))
	}

	var req models.DepartmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	req.DepartmentName = strings.TrimSpace(req.DepartmentName)
	req.Description = strings.TrimSpace(req.Description)

	if req.DepartmentName == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Department name and description are required"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Department name must be at least 3 characters and description at least 10"))
	}

	var department models.Department
	err = dc.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Department not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch department"))
	}

	// Name collision check against every department but this one
	count, err := dc.collection().CountDocuments(ctx, bson.M{
		"departmentName": req.DepartmentName,
		"_id":            bson.M{"$ne": id},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check department"))
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.NewError("Department name already exists"))
	}

	department.DepartmentName = req.DepartmentName
	department.Description = req.Description

	_, err = dc.collection().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"departmentName": req.DepartmentName,
		"description":    req.Description,
	}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update department"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Department updated successfully",
		"department": department,
	})
}

// DeleteDepartment handler deletes unconditionally. Employees and salaries
// keep their department reference; it dangles on purpose.
func (dc *DepartmentController) DeleteDepartment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid department ID"))
	}

	var department models.Department
	err = dc.collection().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&department)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Department not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to delete department"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "Department deleted successfully",
		"department": department,
	})
}

// paginationParams reads page/limit query parameters with the list defaults
func paginationParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
