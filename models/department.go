// models/department.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department model. Reference data only: Employee and Salary point at it
// with weak references, deleting a department does not cascade.
type Department struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	DepartmentName string             `json:"departmentName" bson:"departmentName"`
	Description    string             `json:"description" bson:"description"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

// DepartmentRequest is the create/update body for a department
type DepartmentRequest struct {
	DepartmentName string `json:"departmentName" validate:"required,min=3"`
	Description    string `json:"description" validate:"required,min=10"`
}

// DepartmentRef is the denormalized shape embedded in populated views
type DepartmentRef struct {
	ID             primitive.ObjectID `json:"_id"`
	DepartmentName string             `json:"departmentName"`
	Description    string             `json:"description,omitempty"`
}

// Ref returns the populated-view shape of the department.
func (d *Department) Ref() *DepartmentRef {
	if d == nil {
		return nil
	}
	return &DepartmentRef{
		ID:             d.ID,
		DepartmentName: d.DepartmentName,
		Description:    d.Description,
	}
}
