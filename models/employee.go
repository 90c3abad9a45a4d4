// models/employee.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

// Employee model. Work-assignment record; exactly one per onboarded User
// with role "employee" (unique index on user). EmployeeID is unique when
// present (sparse index).
type Employee struct {
	ID         primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	EmployeeID string              `json:"employeeId,omitempty" bson:"employeeId,omitempty"`
	User       primitive.ObjectID  `json:"user" bson:"user"`
	Department *primitive.ObjectID `json:"department,omitempty" bson:"department,omitempty"`
	Salary     float64             `json:"salary" bson:"salary"`
	HireDate   time.Time           `json:"hireDate" bson:"hireDate"`
	Status     string              `json:"status" bson:"status"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// EmployeeView is the merged Employee+User response object. The pair is one
// logical entity stored across two documents; this is the single mapping
// that combines them, so the field-precedence rules live in one place:
//   - _id is always the Employee's own id
//   - employeeId prefers the Employee's value over the User's legacy copy
//   - the password hash is never carried over
type EmployeeView struct {
	ID            primitive.ObjectID `json:"_id"`
	EmployeeID    string             `json:"employeeId,omitempty"`
	User          primitive.ObjectID `json:"user"`
	Name          string             `json:"name"`
	Email         string             `json:"email"`
	Role          string             `json:"role"`
	ProfileImage  string             `json:"profileImage,omitempty"`
	DateOfBirth   *time.Time         `json:"dateOfBirth,omitempty"`
	Gender        string             `json:"gender,omitempty"`
	MaritalStatus string             `json:"maritalStatus,omitempty"`
	Designation   string             `json:"designation,omitempty"`
	Phone         string             `json:"phone,omitempty"`
	Address       string             `json:"address,omitempty"`
	Position      string             `json:"position,omitempty"`
	Department    *DepartmentRef     `json:"department,omitempty"`
	Salary        float64            `json:"salary"`
	HireDate      time.Time          `json:"hireDate"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// MergeEmployeeUser builds the merged view of an employee, its user and
// (optionally) its department. user and dept may be nil when the reference
// dangles; the employee's own fields still come through.
func MergeEmployeeUser(emp *Employee, user *User, dept *Department) EmployeeView {
	view := EmployeeView{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		User:       emp.User,
		Department: dept.Ref(),
		Salary:     emp.Salary,
		HireDate:   emp.HireDate,
		Status:     emp.Status,
		CreatedAt:  emp.CreatedAt,
		UpdatedAt:  emp.UpdatedAt,
	}

	if user != nil {
		view.Name = user.Name
		view.Email = user.Email
		view.Role = user.Role
		view.ProfileImage = user.ProfileImage
		view.DateOfBirth = user.DateOfBirth
		view.Gender = user.Gender
		view.MaritalStatus = user.MaritalStatus
		view.Designation = user.Designation
		view.Phone = user.Phone
		view.Address = user.Address
		view.Position = user.Position

		// Employee's own employeeId wins over the User's legacy copy
		if view.EmployeeID == "" {
			view.EmployeeID = user.EmployeeID
		}
	}

	return view
}

// EmployeeRef is the populated employee shape embedded in salary views
type EmployeeRef struct {
	ID         primitive.ObjectID `json:"_id"`
	EmployeeID string             `json:"employeeId,omitempty"`
	Name       string             `json:"name,omitempty"`
	Email      string             `json:"email,omitempty"`
}

// Ref returns the salary-view shape of the employee, pulling name and email
// from the linked user when it still resolves.
func (e *Employee) Ref(user *User) *EmployeeRef {
	if e == nil {
		return nil
	}
	ref := &EmployeeRef{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
	}
	if user != nil {
		ref.Name = user.Name
		ref.Email = user.Email
		if ref.EmployeeID == "" {
			ref.EmployeeID = user.EmployeeID
		}
	}
	return ref
}
