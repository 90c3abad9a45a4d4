// controllers/password_controller.go
package controllers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/gomail.v2"

	"github.com/emsdev/ems_backend/config"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/utils"
)

// PasswordController handles password reset functionality
type PasswordController struct {
	DB *mongo.Client
}

// NewPasswordController creates a new password controller
func NewPasswordController(db *mongo.Client) *PasswordController {
	return &PasswordController{DB: db}
}

// ForgetPassword initiates the password reset process
func (pc *PasswordController) ForgetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Email is required"))
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid email format"))
	}

	collection := config.GetCollection(pc.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("No account associated with this email"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check user"))
	}

	otp, err := generateOTP(6)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to generate OTP"))
	}

	otpInfo := models.OTPInfo{
		OTP:       otp,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"otpInfo": otpInfo, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to save OTP information"))
	}

	if err := sendOTPByEmail(user.Email, user.Name, otp); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to send OTP email"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password reset OTP sent successfully",
		"email":   maskEmail(user.Email),
		"userId":  user.ID.Hex(),
	})
}

// VerifyOTP verifies the OTP and hands back a short-lived reset token
func (pc *PasswordController) VerifyOTP(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		UserID string `json:"userId"`
		OTP    string `json:"otp"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	if req.UserID == "" || req.OTP == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("User ID and OTP are required"))
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid user ID"))
	}

	collection := config.GetCollection(pc.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to retrieve user"))
	}

	if user.OTPInfo == nil {
		return c.JSON(http.StatusBadRequest, models.NewError("No OTP request found. Please request a new OTP"))
	}

	if time.Now().After(user.OTPInfo.ExpiresAt) {
		return c.JSON(http.StatusBadRequest, models.NewError("OTP has expired. Please request a new OTP"))
	}

	if user.OTPInfo.OTP != req.OTP {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid OTP"))
	}

	resetToken, err := generateResetToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to generate reset token"))
	}

	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$set": bson.M{
				"resetPasswordToken":  resetToken,
				"resetTokenExpiresAt": time.Now().Add(1 * time.Hour),
				"updatedAt":           time.Now(),
			},
			"$unset": bson.M{"otpInfo": ""},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update reset token"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"message":    "OTP verified successfully",
		"resetToken": resetToken,
		"userId":     user.ID.Hex(),
	})
}

// ResetPassword resets the user's password against a valid reset token
func (pc *PasswordController) ResetPassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req struct {
		UserID      string `json:"userId"`
		ResetToken  string `json:"resetToken"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	if req.UserID == "" || req.ResetToken == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("User ID, reset token and new password are required"))
	}

	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, models.NewError("New password must be at least 6 characters long"))
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid user ID"))
	}

	collection := config.GetCollection(pc.DB, "users")

	var user models.User
	err = collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to retrieve user"))
	}

	if user.ResetToken == "" || user.ResetToken != req.ResetToken {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid reset token"))
	}

	if time.Now().After(user.ResetExpires) {
		return c.JSON(http.StatusBadRequest, models.NewError("Reset token has expired. Please request a new OTP"))
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to hash password"))
	}

	_, err = collection.UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$set": bson.M{
				"password":  hashedPassword,
				"updatedAt": time.Now(),
			},
			"$unset": bson.M{
				"resetPasswordToken":  "",
				"resetTokenExpiresAt": "",
			},
		},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update password"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password reset successfully",
	})
}

// generateOTP produces a numeric code of the given length
func generateOTP(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}

// generateResetToken produces an opaque single-use token
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// maskEmail hides most of the local part for UI display
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	return email[:1] + strings.Repeat("*", at-1) + email[at:]
}

// sendOTPByEmail delivers the reset code over SMTP
func sendOTPByEmail(to, name, otp string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort := 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			smtpPort = port
		}
	}

	if smtpHost == "" || smtpUser == "" {
		return fmt.Errorf("SMTP is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour password reset code is: %s\n\nIt expires in 15 minutes. If you did not request this, you can ignore this email.\n",
		name, otp,
	))

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
