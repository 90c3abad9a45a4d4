// models/salary.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Salary model. A pay record holding weak references to Employee and, as a
// denormalized copy, the employee's Department at creation time. Multiple
// records per employee form the pay history; nothing constrains
// (employee, payDate) to be unique.
type Salary struct {
	ID          primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Employee    primitive.ObjectID  `json:"employee" bson:"employee"`
	Department  *primitive.ObjectID `json:"department,omitempty" bson:"department,omitempty"`
	BasicSalary float64             `json:"basicSalary" bson:"basicSalary"`
	Allowance   float64             `json:"allowance" bson:"allowance"`
	Deduction   float64             `json:"deduction" bson:"deduction"`
	PayDate     time.Time           `json:"payDate" bson:"payDate"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Net computes the derived net salary. Never persisted; always recomputed
// at read time.
func (s *Salary) Net() float64 {
	return s.BasicSalary + s.Allowance - s.Deduction
}

// SalaryView is the populated response shape: references resolved to their
// display fields and netSalary computed. A dangling employee or department
// reference resolves to null, not an error.
type SalaryView struct {
	ID          primitive.ObjectID `json:"_id"`
	Employee    *EmployeeRef       `json:"employee"`
	Department  *DepartmentRef     `json:"department,omitempty"`
	BasicSalary float64            `json:"basicSalary"`
	Allowance   float64            `json:"allowance"`
	Deduction   float64            `json:"deduction"`
	NetSalary   float64            `json:"netSalary"`
	PayDate     time.Time          `json:"payDate"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// BuildSalaryView resolves a salary record into its populated view.
func BuildSalaryView(s *Salary, emp *Employee, user *User, dept *Department) SalaryView {
	view := SalaryView{
		ID:          s.ID,
		Employee:    emp.Ref(user),
		BasicSalary: s.BasicSalary,
		Allowance:   s.Allowance,
		Deduction:   s.Deduction,
		NetSalary:   s.Net(),
		PayDate:     s.PayDate,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if dept != nil {
		view.Department = &DepartmentRef{ID: dept.ID, DepartmentName: dept.DepartmentName}
	}
	return view
}

// SalaryRequest is the create/update body for a salary record. Amounts come
// in as strings or numbers from the form, so they are accepted raw and
// coerced by the controller.
type SalaryRequest struct {
	Employee    string      `json:"employee"`
	Department  string      `json:"department"`
	BasicSalary interface{} `json:"basicSalary"`
	Allowance   interface{} `json:"allowance"`
	Deduction   interface{} `json:"deduction"`
	PayDate     string      `json:"payDate"`
}
