// controllers/employee_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
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

// EmployeeController manages the User+Employee aggregate: one logical
// entity persisted as two documents, merged back together on every read.
type EmployeeController struct {
	DB     *mongo.Client
	logger *log.Logger
}

// NewEmployeeController creates a new employee controller
func NewEmployeeController(db *mongo.Client) *EmployeeController {
	return &EmployeeController{
		DB:     db,
		logger: log.New(os.Stdout, "[EMPLOYEE] ", log.LstdFlags),
	}
}

func (ec *EmployeeController) employees() *mongo.Collection {
	return config.GetCollection(ec.DB, "employees")
}

func (ec *EmployeeController) users() *mongo.Collection {
	return config.GetCollection(ec.DB, "users")
}

func (ec *EmployeeController) departments() *mongo.Collection {
	return config.GetCollection(ec.DB, "departments")
}

// AddEmployee handler creates the User+Employee pair from a multipart form.
// The two inserts are not transactional; if the Employee insert fails the
// just-created User is deleted again so no orphan survives.
func (ec *EmployeeController) AddEmployee(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := strings.TrimSpace(c.FormValue("name"))
	email := c.FormValue("email")
	password := c.FormValue("password")

	if name == "" || email == "" || password == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Name, email, and password are required"))
	}

	email, err := utils.SanitizeEmail(email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid email format"))
	}

	count, err := ec.users().CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check user"))
	}
	if count > 0 {
		return c.JSON(http.StatusBadRequest, models.NewError("User with this email already exists"))
	}

	employeeID := strings.TrimSpace(c.FormValue("employeeId"))
	if employeeID != "" {
		count, err := ec.employees().CountDocuments(ctx, bson.M{"employeeId": employeeID})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check employee ID"))
		}
		if count > 0 {
			return c.JSON(http.StatusBadRequest, models.NewError("Employee ID already exists"))
		}
	}

	var departmentID *primitive.ObjectID
	var department *models.Department
	if deptParam := c.FormValue("department"); deptParam != "" {
		id, err := primitive.ObjectIDFromHex(deptParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Department not found"))
		}
		department, err = ec.findDepartment(ctx, id)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusBadRequest, models.NewError("Department not found"))
			}
			return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check department"))
		}
		departmentID = &id
	}

	status := c.FormValue("status")
	if status == "" {
		status = models.StatusActive
	}
	if !isValidEmployeeStatus(status) {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee status"))
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to hash password"))
	}

	profileImagePath := ""
	if fh, err := c.FormFile("profileImage"); err == nil && fh != nil {
		profileImagePath, err = utils.SaveProfileImage(fh)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError(err.Error()))
		}
	}

	role := c.FormValue("role")
	if role != models.RoleAdmin {
		role = models.RoleEmployee
	}

	designation := strings.TrimSpace(c.FormValue("designation"))
	position := strings.TrimSpace(c.FormValue("position"))
	if designation == "" {
		designation = position
	}
	if position == "" {
		position = designation
	}

	salary, err := utils.ParseFloat(c.FormValue("salary"))
	if err != nil || salary < 0 {
		salary = 0
	}

	hireDate := parseDate(c.FormValue("hireDate"))
	if hireDate == nil {
		now := time.Now()
		hireDate = &now
	}

	now := time.Now()
	user := models.User{
		Name:          name,
		Email:         email,
		Password:      hashedPassword,
		Role:          role,
		ProfileImage:  profileImagePath,
		EmployeeID:    employeeID,
		DateOfBirth:   parseDate(c.FormValue("dateOfBirth")),
		Gender:        strings.TrimSpace(c.FormValue("gender")),
		MaritalStatus: strings.TrimSpace(c.FormValue("maritalStatus")),
		Designation:   designation,
		Phone:         strings.TrimSpace(c.FormValue("phone")),
		Address:       strings.TrimSpace(c.FormValue("address")),
		Position:      position,
		CreatedAt:     now,
	}

	userResult, err := ec.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.NewError("User with this email already exists"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to create user"))
	}
	user.ID = userResult.InsertedID.(primitive.ObjectID)

	employee := models.Employee{
		EmployeeID: employeeID,
		User:       user.ID,
		Department: departmentID,
		Salary:     salary,
		HireDate:   *hireDate,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	empResult, err := ec.employees().InsertOne(ctx, employee)
	if err != nil {
		// Compensating action for the non-transactional dual write: take the
		// User back out so the aggregate is all-or-nothing for callers.
		if _, delErr := ec.users().DeleteOne(ctx, bson.M{"_id": user.ID}); delErr != nil {
			ec.logger.Printf("Failed to roll back user %s after employee insert error: %v", user.ID.Hex(), delErr)
		}
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.NewError("Employee ID already exists"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to create employee"))
	}
	employee.ID = empResult.InsertedID.(primitive.ObjectID)

	view := models.MergeEmployeeUser(&employee, &user, department)

	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"message":  "Employee added successfully",
		"employee": view,
	})
}

// GetEmployees handler lists merged employee views with pagination and
// free-text search over the linked users' name/email/position.
func (ec *EmployeeController) GetEmployees(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	page, limit := paginationParams(c)
	search := c.QueryParam("search")

	filter := bson.M{}
	if search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
		cursor, err := ec.users().Find(ctx, bson.M{
			"role": models.RoleEmployee,
			"$or": []bson.M{
				{"name": pattern},
				{"email": pattern},
				{"position": pattern},
			},
		}, options.Find().SetProjection(bson.M{"_id": 1}))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.NewError("Failed to search users"))
		}

		var matched []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &matched); err != nil {
			return c.JSON(http.StatusInternalServerError, models.NewError("Failed to search users"))
		}

		userIDs := make([]primitive.ObjectID, 0, len(matched))
		for _, m := range matched {
			userIDs = append(userIDs, m.ID)
		}
		filter["user"] = bson.M{"$in": userIDs}
	}

	totalCount, err := ec.employees().CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to count employees"))
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := ec.employees().Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch employees"))
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	if err := cursor.All(ctx, &employees); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to decode employees"))
	}

	users, departments, err := ec.resolveReferences(ctx, employees)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to resolve employee references"))
	}

	views := make([]models.EmployeeView, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		user := users[emp.User]
		var dept *models.Department
		if emp.Department != nil {
			dept = departments[*emp.Department]
		}
		views = append(views, models.MergeEmployeeUser(emp, user, dept))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"pagination": models.NewPagination(page, limit, totalCount),
		"count":      len(views),
		"employees":  views,
	})
}

// GetEmployee handler reads one merged employee view
func (ec *EmployeeController) GetEmployee(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee ID"))
	}

	employee, user, department, err := ec.loadAggregate(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Employee not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch employee"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"employee": models.MergeEmployeeUser(employee, user, department),
	})
}

// UpdateEmployee handler applies a partial update across both documents of
// the aggregate. Only fields present in the form are touched; the User and
// Employee documents are written independently.
func (ec *EmployeeController) UpdateEmployee(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee ID"))
	}

	var employee models.Employee
	err = ec.employees().FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Employee not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch employee"))
	}

	var user models.User
	err = ec.users().FindOne(ctx, bson.M{"_id": employee.User}).Decode(&user)
	if err != nil || user.Role != models.RoleEmployee {
		return c.JSON(http.StatusNotFound, models.NewError("User not found or not an employee"))
	}

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	userSet := bson.M{}
	empSet := bson.M{}
	empUnset := bson.M{}

	if email, ok := formField(form, "email"); ok && email != "" {
		email, err := utils.SanitizeEmail(email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid email format"))
		}
		if email != user.Email {
			count, err := ec.users().CountDocuments(ctx, bson.M{
				"email": email,
				"_id":   bson.M{"$ne": user.ID},
			})
			if err != nil {
				return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check user"))
			}
			if count > 0 {
				return c.JSON(http.StatusBadRequest, models.NewError("Email already exists"))
			}
		}
		user.Email = email
		userSet["email"] = email
	}

	if employeeID, ok := formField(form, "employeeId"); ok {
		employeeID = strings.TrimSpace(employeeID)
		if employeeID != "" && employeeID != employee.EmployeeID {
			count, err := ec.employees().CountDocuments(ctx, bson.M{
				"employeeId": employeeID,
				"_id":        bson.M{"$ne": id},
			})
			if err != nil {
				return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check employee ID"))
			}
			if count > 0 {
				return c.JSON(http.StatusBadRequest, models.NewError("Employee ID already exists"))
			}
		}
		employee.EmployeeID = employeeID
		applyEmployeeIDChange(employeeID, empSet, empUnset)
	}

	var department *models.Department
	if deptParam, ok := formField(form, "department"); ok {
		if deptParam == "" {
			employee.Department = nil
			empSet["department"] = nil
		} else {
			deptID, err := primitive.ObjectIDFromHex(deptParam)
			if err != nil {
				return c.JSON(http.StatusBadRequest, models.NewError("Department not found"))
			}
			department, err = ec.findDepartment(ctx, deptID)
			if err != nil {
				if err == mongo.ErrNoDocuments {
					return c.JSON(http.StatusBadRequest, models.NewError("Department not found"))
				}
				return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check department"))
			}
			employee.Department = &deptID
			empSet["department"] = deptID
		}
	}

	if fh, err := c.FormFile("profileImage"); err == nil && fh != nil {
		path, err := utils.SaveProfileImage(fh)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.NewError(err.Error()))
		}
		user.ProfileImage = path
		userSet["profileImage"] = path
	}

	if name, ok := formField(form, "name"); ok && strings.TrimSpace(name) != "" {
		user.Name = strings.TrimSpace(name)
		userSet["name"] = user.Name
	}
	for field, apply := range map[string]func(string){
		"phone":         func(v string) { user.Phone = v; userSet["phone"] = v },
		"address":       func(v string) { user.Address = v; userSet["address"] = v },
		"position":      func(v string) { user.Position = v; userSet["position"] = v },
		"designation":   func(v string) { user.Designation = v; userSet["designation"] = v },
		"gender":        func(v string) { user.Gender = v; userSet["gender"] = v },
		"maritalStatus": func(v string) { user.MaritalStatus = v; userSet["maritalStatus"] = v },
	} {
		if v, ok := formField(form, field); ok {
			apply(strings.TrimSpace(v))
		}
	}
	if dob, ok := formField(form, "dateOfBirth"); ok {
		parsed := parseDate(dob)
		user.DateOfBirth = parsed
		userSet["dateOfBirth"] = parsed
	}

	if salaryStr, ok := formField(form, "salary"); ok {
		salary, err := utils.ParseFloat(salaryStr)
		if err != nil || salary < 0 {
			salary = 0
		}
		employee.Salary = salary
		empSet["salary"] = salary
	}
	if hireDateStr, ok := formField(form, "hireDate"); ok && hireDateStr != "" {
		if parsed := parseDate(hireDateStr); parsed != nil {
			employee.HireDate = *parsed
			empSet["hireDate"] = *parsed
		}
	}
	if status, ok := formField(form, "status"); ok && status != "" {
		if !isValidEmployeeStatus(status) {
			return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee status"))
		}
		employee.Status = status
		empSet["status"] = status
	}

	now := time.Now()
	if len(userSet) > 0 {
		userSet["updatedAt"] = now
		if _, err := ec.users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": userSet}); err != nil {
			return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update user"))
		}
	}

	empSet["updatedAt"] = now
	employee.UpdatedAt = now
	if _, err := ec.employees().UpdateOne(ctx, bson.M{"_id": id}, updateDocument(empSet, empUnset)); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update employee"))
	}

	if department == nil && employee.Department != nil {
		department, _ = ec.findDepartment(ctx, *employee.Department)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Employee updated successfully",
		"employee": models.MergeEmployeeUser(&employee, &user, department),
	})
}

// DeleteEmployee handler removes both documents of the aggregate and
// returns the merged view of the deleted pair. Salary records referencing
// the employee are left alone; their reference dangles by design.
func (ec *EmployeeController) DeleteEmployee(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid employee ID"))
	}

	employee, user, department, err := ec.loadAggregate(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("Employee not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to fetch employee"))
	}

	if _, err := ec.employees().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to delete employee"))
	}

	if user != nil {
		if _, err := ec.users().DeleteOne(ctx, bson.M{"_id": user.ID}); err != nil {
			ec.logger.Printf("Failed to delete user %s for employee %s: %v", user.ID.Hex(), id.Hex(), err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"message":  "Employee deleted successfully",
		"employee": models.MergeEmployeeUser(employee, user, department),
	})
}

// loadAggregate fetches an employee with its user and department resolved.
// A dangling user or department reference comes back nil, not as an error.
func (ec *EmployeeController) loadAggregate(ctx context.Context, id primitive.ObjectID) (*models.Employee, *models.User, *models.Department, error) {
	var employee models.Employee
	if err := ec.employees().FindOne(ctx, bson.M{"_id": id}).Decode(&employee); err != nil {
		return nil, nil, nil, err
	}

	var user *models.User
	var u models.User
	err := ec.users().FindOne(ctx, bson.M{"_id": employee.User}).Decode(&u)
	if err == nil {
		u.Password = ""
		user = &u
	} else if err != mongo.ErrNoDocuments {
		return nil, nil, nil, err
	}

	var department *models.Department
	if employee.Department != nil {
		department, err = ec.findDepartment(ctx, *employee.Department)
		if err != nil && err != mongo.ErrNoDocuments {
			return nil, nil, nil, err
		}
	}

	return &employee, user, department, nil
}

// resolveReferences batch-loads the users and departments referenced by a
// page of employees.
func (ec *EmployeeController) resolveReferences(ctx context.Context, employees []models.Employee) (map[primitive.ObjectID]*models.User, map[primitive.ObjectID]*models.Department, error) {
	userIDs := make([]primitive.ObjectID, 0, len(employees))
	deptIDs := make([]primitive.ObjectID, 0, len(employees))
	for _, emp := range employees {
		userIDs = append(userIDs, emp.User)
		if emp.Department != nil {
			deptIDs = append(deptIDs, *emp.Department)
		}
	}

	users := make(map[primitive.ObjectID]*models.User)
	if len(userIDs) > 0 {
		cursor, err := ec.users().Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}},
			options.Find().SetProjection(bson.M{"password": 0}))
		if err != nil {
			return nil, nil, err
		}
		var decoded []models.User
		if err := cursor.All(ctx, &decoded); err != nil {
			return nil, nil, err
		}
		for i := range decoded {
			users[decoded[i].ID] = &decoded[i]
		}
	}

	departments := make(map[primitive.ObjectID]*models.Department)
	if len(deptIDs) > 0 {
		cursor, err := ec.departments().Find(ctx, bson.M{"_id": bson.M{"$in": deptIDs}})
		if err != nil {
			return nil, nil, err
		}
		var decoded []models.Department
		if err := cursor.All(ctx, &decoded); err != nil {
			return nil, nil, err
		}
		for i := range decoded {
			departments[decoded[i].ID] = &decoded[i]
		}
	}

	return users, departments, nil
}

func (ec *EmployeeController) findDepartment(ctx context.Context, id primitive.ObjectID) (*models.Department, error) {
	var department models.Department
	if err := ec.departments().FindOne(ctx, bson.M{"_id": id}).Decode(&department); err != nil {
		return nil, err
	}
	return &department, nil
}

// applyEmployeeIDChange records an employeeId mutation. A cleared id is
// removed from the document entirely: the unique index on employeeId is
// sparse, and sparse only skips documents where the field is absent, so
// storing "" would make two cleared employees collide.
func applyEmployeeIDChange(employeeID string, set, unset bson.M) {
	if employeeID == "" {
		unset["employeeId"] = ""
		return
	}
	set["employeeId"] = employeeID
}

// updateDocument composes a Mongo update from the collected mutations
func updateDocument(set, unset bson.M) bson.M {
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func isValidEmployeeStatus(status string) bool {
	switch status {
	case models.StatusActive, models.StatusInactive, models.StatusOnLeave:
		return true
	}
	return false
}

// parseDate accepts the frontend's yyyy-mm-dd form values, falling back to
// RFC 3339; anything else is treated as absent.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	return nil
}

// formField reports whether the field was present in the submitted form,
// so absent and explicitly-empty values can be told apart on update.
func formField(form map[string][]string, key string) (string, bool) {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}
