package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSalaryNet(t *testing.T) {
	tests := []struct {
		name   string
		salary Salary
		want   float64
	}{
		{"all components", Salary{BasicSalary: 3000, Allowance: 500, Deduction: 200}, 3300},
		{"basic only", Salary{BasicSalary: 1000}, 1000},
		{"deduction exceeds income", Salary{BasicSalary: 100, Deduction: 250}, -150},
		{"zero record", Salary{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.salary.Net(); got != tt.want {
				t.Errorf("Net() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildSalaryView(t *testing.T) {
	empID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	deptID := primitive.NewObjectID()
	payDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	salary := Salary{
		ID:          primitive.NewObjectID(),
		Employee:    empID,
		Department:  &deptID,
		BasicSalary: 2500,
		Allowance:   300,
		Deduction:   100,
		PayDate:     payDate,
	}
	employee := Employee{ID: empID, EmployeeID: "EMP-010", User: userID}
	user := User{ID: userID, Name: "Nadia", Email: "nadia@example.com"}
	dept := Department{ID: deptID, DepartmentName: "Finance"}

	view := BuildSalaryView(&salary, &employee, &user, &dept)

	if view.NetSalary != 2700 {
		t.Errorf("netSalary = %v, want 2700", view.NetSalary)
	}
	if view.Employee == nil || view.Employee.Name != "Nadia" || view.Employee.EmployeeID != "EMP-010" {
		t.Errorf("employee not populated: %+v", view.Employee)
	}
	if view.Department == nil || view.Department.DepartmentName != "Finance" {
		t.Errorf("department not populated: %+v", view.Department)
	}
	if !view.PayDate.Equal(payDate) {
		t.Errorf("payDate = %v, want %v", view.PayDate, payDate)
	}
}

func TestBuildSalaryViewDanglingReferences(t *testing.T) {
	salary := Salary{
		ID:          primitive.NewObjectID(),
		Employee:    primitive.NewObjectID(),
		BasicSalary: 1200,
	}

	view := BuildSalaryView(&salary, nil, nil, nil)

	if view.Employee != nil {
		t.Errorf("deleted employee should resolve to null, got %+v", view.Employee)
	}
	if view.Department != nil {
		t.Errorf("absent department should resolve to null, got %+v", view.Department)
	}
	if view.NetSalary != 1200 {
		t.Errorf("netSalary still computed from the record itself, got %v", view.NetSalary)
	}
}
