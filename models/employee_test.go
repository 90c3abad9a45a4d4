package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMergeEmployeeUser(t *testing.T) {
	empID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	deptID := primitive.NewObjectID()
	hired := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	employee := Employee{
		ID:         empID,
		EmployeeID: "EMP-001",
		User:       userID,
		Department: &deptID,
		Salary:     3000,
		HireDate:   hired,
		Status:     StatusActive,
	}
	user := User{
		ID:         userID,
		Name:       "Jane Smith",
		Email:      "jane@example.com",
		Password:   "$2a$10$secret",
		Role:       RoleEmployee,
		EmployeeID: "LEGACY-9",
		Position:   "Engineer",
	}
	dept := Department{ID: deptID, DepartmentName: "Engineering"}

	view := MergeEmployeeUser(&employee, &user, &dept)

	if view.ID != empID {
		t.Errorf("view _id = %s, want employee id %s", view.ID.Hex(), empID.Hex())
	}
	if view.EmployeeID != "EMP-001" {
		t.Errorf("employeeId = %q, want employee's own value over the user copy", view.EmployeeID)
	}
	if view.Name != "Jane Smith" || view.Email != "jane@example.com" {
		t.Errorf("user fields not merged: name=%q email=%q", view.Name, view.Email)
	}
	if view.Department == nil || view.Department.DepartmentName != "Engineering" {
		t.Errorf("department not resolved: %+v", view.Department)
	}
	if view.Salary != 3000 || view.Status != StatusActive {
		t.Errorf("employee fields not carried: salary=%v status=%q", view.Salary, view.Status)
	}
}

func TestMergeEmployeeUserLegacyEmployeeID(t *testing.T) {
	employee := Employee{ID: primitive.NewObjectID(), User: primitive.NewObjectID()}
	user := User{ID: employee.User, Name: "Old Timer", EmployeeID: "LEGACY-9"}

	view := MergeEmployeeUser(&employee, &user, nil)

	if view.EmployeeID != "LEGACY-9" {
		t.Errorf("employeeId = %q, want fallback to the user's legacy copy", view.EmployeeID)
	}
}

func TestMergeEmployeeUserDanglingUser(t *testing.T) {
	employee := Employee{
		ID:         primitive.NewObjectID(),
		EmployeeID: "EMP-002",
		User:       primitive.NewObjectID(),
		Salary:     1500,
		Status:     StatusInactive,
	}

	view := MergeEmployeeUser(&employee, nil, nil)

	if view.Name != "" || view.Email != "" {
		t.Errorf("dangling user should leave user fields empty, got name=%q email=%q", view.Name, view.Email)
	}
	if view.EmployeeID != "EMP-002" || view.Salary != 1500 {
		t.Errorf("employee's own fields must survive a dangling user reference: %+v", view)
	}
	if view.Department != nil {
		t.Errorf("nil department must stay nil, got %+v", view.Department)
	}
}

func TestEmployeeRef(t *testing.T) {
	var none *Employee
	if ref := none.Ref(nil); ref != nil {
		t.Fatalf("nil employee should produce a nil ref, got %+v", ref)
	}

	employee := Employee{ID: primitive.NewObjectID(), User: primitive.NewObjectID()}
	user := User{ID: employee.User, Name: "Sam", Email: "sam@example.com", EmployeeID: "E-7"}

	ref := employee.Ref(&user)
	if ref == nil {
		t.Fatal("expected a ref")
	}
	if ref.Name != "Sam" || ref.Email != "sam@example.com" {
		t.Errorf("user fields not pulled into ref: %+v", ref)
	}
	if ref.EmployeeID != "E-7" {
		t.Errorf("employeeId = %q, want legacy fallback when employee has none", ref.EmployeeID)
	}
}
