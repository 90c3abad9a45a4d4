// controllers/salary_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emsdev/ems_backend/config"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/utils"
)

// SalaryController manages pay records. A salary holds weak references to
// its employee and department; views resolve them best-effort and compute
// netSalary on the way out.
type SalaryController struct {
	DB *mongo.Client
}

// NewSalaryController creates a new salary controller
func NewSalaryController(db *mongo.Client) *SalaryController {
	return &SalaryController{DB: db}
}

func (sc *SalaryController) salaries() *mongo.Collection {
	return config.GetCollection(sc.DB, "salaries")
}

func (sc *SalaryController) employeesCol() *mongo.Collection {
	return config.GetCollection(sc.DB, "employees")
}

func (sc *SalaryController) usersCol() *mongo.Collection {
	return config.GetCollection(sc.DB, "users")
}

func (sc *SalaryController) departmentsCol() *mongo.Collection {
	return config.GetCollection(sc.DB, "departments")
}

// AddSalary handler records a pay entry for an employee. When no department
// is given the employee's current department is copied in, freezing it at
// creation time.
func (sc *SalaryController) AddSalary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.SalaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	if req.Employee == "" || req.BasicSalary == nil || req.PayDate == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Employee, basic salary, and pay date are required"))
	}

	employeeID, err := primitive.ObjectIDFromHex(req.Employee)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee ID"))
	}

	var employee models.Employee
	err = sc.employeesCol().FindOne(ctx, bson.M{"_id": employeeID}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Employee not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch employee"))
	}

	payDate := parseDate(req.PayDate)
	if payDate == nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid pay date"))
	}

	var departmentID *primitive.ObjectID
	if req.Department != "" {
		id, err := primitive.ObjectIDFromHex(req.Department)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid department ID"))
		}
		departmentID = &id
	} else {
		departmentID = employee.Department
	}

	now := time.Now()
	salary := models.Salary{
		Employee:    employeeID,
		Department:  departmentID,
		BasicSalary: utils.CoerceFloat(req.BasicSalary),
		Allowance:   utils.CoerceFloat(req.Allowance),
		Deduction:   utils.CoerceFloat(req.Deduction),
		PayDate:     *payDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := sc.salaries().InsertOne(ctx, salary)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to create salary record"))
	}
	salary.ID = result.InsertedID.(primitive.ObjectID)

	view := sc.buildView(ctx, &salary)

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Salary added successfully",
		"salary":  view,
	})
}

// GetSalaries handler lists pay records, optionally filtered by employee or
// department, newest pay date first.
func (sc *SalaryController) GetSalaries(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := paginationParams(c)

	filter := bson.M{}
	if employeeParam := c.QueryParam("employeeId"); employeeParam != "" {
		id, err := primitive.ObjectIDFromHex(employeeParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee ID"))
		}
		filter["employee"] = id
	}
	if deptParam := c.QueryParam("departmentId"); deptParam != "" {
		id, err := primitive.ObjectIDFromHex(deptParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid department ID"))
		}
		filter["department"] = id
	}

	totalCount, err := sc.salaries().CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to count salaries"))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "payDate", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := sc.salaries().Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch salaries"))
	}
	defer cursor.Close(ctx)

	var salaries []models.Salary
	if err := cursor.All(ctx, &salaries); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to decode salaries"))
	}

	views := make([]models.SalaryView, 0, len(salaries))
	for i := range salaries {
		views = append(views, sc.buildView(ctx, &salaries[i]))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"pagination": models.NewPagination(page, limit, totalCount),
		"count":      len(views),
		"salaries":   views,
	})
}

// GetSalary handler reads a single populated pay record
func (sc *SalaryController) GetSalary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid salary ID"))
	}

	var salary models.Salary
	err = sc.salaries().FindOne(ctx, bson.M{"_id": id}).Decode(&salary)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Salary record not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch salary"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"salary":  sc.buildView(ctx, &salary),
	})
}

// UpdateSalary handler rewrites a pay record. Changing the employee without
// naming a department re-derives the department from the new employee.
func (sc *SalaryController) UpdateSalary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid salary ID"))
	}

	var salary models.Salary
	err = sc.salaries().FindOne(ctx, bson.M{"_id": id}).Decode(&salary)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Salary record not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch salary"))
	}

	var req models.SalaryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	set := bson.M{}

	employeeChanged := false
	if req.Employee != "" {
		employeeID, err := primitive.ObjectIDFromHex(req.Employee)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee ID"))
		}
		if employeeID != salary.Employee {
			count, err := sc.employeesCol().CountDocuments(ctx, bson.M{"_id": employeeID})
			if err != nil {
				return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch employee"))
			}
			if count == 0 {
				return c.JSON(http.StatusNotFound, models.NewError("Employee not found"))
			}
			salary.Employee = employeeID
			set["employee"] = employeeID
			employeeChanged = true
		}
	}

	if req.Department != "" {
		deptID, err := primitive.ObjectIDFromHex(req.Department)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid department ID"))
		}
		salary.Department = &deptID
		set["department"] = deptID
	} else if employeeChanged {
		// New employee, no explicit department: copy the new employee's
		var employee models.Employee
		if err := sc.employeesCol().FindOne(ctx, bson.M{"_id": salary.Employee}).Decode(&employee); err == nil {
			salary.Department = employee.Department
			set["department"] = employee.Department
		}
	}

	if req.BasicSalary != nil {
		salary.BasicSalary = utils.CoerceFloat(req.BasicSalary)
		set["basicSalary"] = salary.BasicSalary
	}
	if req.Allowance != nil {
		salary.Allowance = utils.CoerceFloat(req.Allowance)
		set["allowance"] = salary.Allowance
	}
	if req.Deduction != nil {
		salary.Deduction = utils.CoerceFloat(req.Deduction)
		set["deduction"] = salary.Deduction
	}
	if req.PayDate != "" {
		payDate := parseDate(req.PayDate)
		if payDate == nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid pay date"))
		}
		salary.PayDate = *payDate
		set["payDate"] = *payDate
	}

	salary.UpdatedAt = time.Now()
	set["updatedAt"] = salary.UpdatedAt

	_, err = sc.salaries().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update salary"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Salary updated successfully",
		"salary":  sc.buildView(ctx, &salary),
	})
}

// DeleteSalary handler removes one pay record
func (sc *SalaryController) DeleteSalary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid salary ID"))
	}

	var salary models.Salary
	err = sc.salaries().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&salary)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Salary record not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to delete salary"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Salary deleted successfully",
		"salary":  sc.buildView(ctx, &salary),
	})
}

// buildView resolves the record's references. A deleted employee, user or
// department just comes back null in the view.
func (sc *SalaryController) buildView(ctx context.Context, salary *models.Salary) models.SalaryView {
	var employee *models.Employee
	var user *models.User

	var emp models.Employee
	if err := sc.employeesCol().FindOne(ctx, bson.M{"_id": salary.Employee}).Decode(&emp); err == nil {
		employee = &emp
		var u models.User
		if err := sc.usersCol().FindOne(ctx, bson.M{"_id": emp.User}).Decode(&u); err == nil {
			u.Password = ""
			user = &u
		}
	}

	var department *models.Department
	if salary.Department != nil {
		var dept models.Department
		if err := sc.departmentsCol().FindOne(ctx, bson.M{"_id": *salary.Department}).Decode(&dept); err == nil {
			department = &dept
		}
	}

	return models.BuildSalaryView(salary, employee, user, department)
}
