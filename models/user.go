// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User model. Identity plus profile fields; the work-assignment side of an
// employee lives in the Employee document (1:1 via Employee.User).
type User struct {
	ID            primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Email         string              `json:"email" bson:"email"`
	Password      string              `json:"-" bson:"password"`
	Role          string              `json:"role" bson:"role"`
	ProfileImage  string              `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	EmployeeID    string              `json:"employeeId,omitempty" bson:"employeeId,omitempty"` // legacy copy, Employee.EmployeeID wins
	DateOfBirth   *time.Time          `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender        string              `json:"gender,omitempty" bson:"gender,omitempty"`               // "male", "female", "other"
	MaritalStatus string              `json:"maritalStatus,omitempty" bson:"maritalStatus,omitempty"` // "single", "married", "divorced", "widowed"
	Designation   string              `json:"designation,omitempty" bson:"designation,omitempty"`
	Phone         string              `json:"phone,omitempty" bson:"phone,omitempty"`
	Address       string              `json:"address,omitempty" bson:"address,omitempty"`
	Position      string              `json:"position,omitempty" bson:"position,omitempty"`
	Department    *primitive.ObjectID `json:"department,omitempty" bson:"department,omitempty"`
	Salary        float64             `json:"salary,omitempty" bson:"salary,omitempty"`
	HireDate      *time.Time          `json:"hireDate,omitempty" bson:"hireDate,omitempty"`
	Status        string              `json:"status,omitempty" bson:"status,omitempty"`
	OTPInfo       *OTPInfo            `json:"-" bson:"otpInfo,omitempty"`
	ResetToken    string              `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetExpires  time.Time           `json:"-" bson:"resetTokenExpiresAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// OTPInfo holds a pending password-reset OTP
type OTPInfo struct {
	OTP       string    `json:"otp" bson:"otp"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

// PublicUser is the login/register response shape: identity only, never the
// password hash.
type PublicUser struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Role         string             `json:"role"`
	ProfileImage string             `json:"profileImage,omitempty"`
}

// Public strips a stored User down to its login response shape.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of POST /api/auth/change-password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
