// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/emsdev/ems_backend/config"
	"github.com/emsdev/ems_backend/middleware"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/repositories"
	"github.com/emsdev/ems_backend/security"
	"github.com/emsdev/ems_backend/utils"
)

type loginAttempt struct {
	count       int
	lastAttempt time.Time
}

// AuthController contains authentication logic
type AuthController struct {
	DB              *mongo.Client
	users           *repositories.UserRepository
	sessions        *security.SessionStore
	logger          *log.Logger
	loginAttempts   map[string]loginAttempt
	loginAttemptsMu sync.RWMutex
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Client, sessions *security.SessionStore) *AuthController {
	ac := &AuthController{
		DB:            db,
		users:         repositories.NewUserRepository(db),
		sessions:      sessions,
		logger:        log.New(os.Stdout, "[AUTH] ", log.LstdFlags),
		loginAttempts: make(map[string]loginAttempt),
	}

	go ac.startLoginAttemptCleanupRoutine()

	return ac
}

// Register handler creates a new user and issues a token
func (ac *AuthController) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Name, email, and password are required"))
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid email format"))
	}

	if _, err := ac.users.FindByEmail(ctx, email); err == nil {
		return c.JSON(http.StatusBadRequest, models.NewError("User with this email already exists"))
	} else if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to check user"))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to hash password"))
	}

	role := req.Role
	if role != models.RoleAdmin {
		role = models.RoleEmployee
	}

	user := models.User{
		Name:      utils.SanitizeInput(req.Name),
		Email:     email,
		Password:  hashedPassword,
		Role:      role,
		CreatedAt: time.Now(),
	}

	collection := config.GetCollection(ac.DB, "users")
	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusBadRequest, models.NewError("User with this email already exists"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to create user"))
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to generate token"))
	}

	if err := ac.sessions.Set(ctx, token, user.ID.Hex(), middleware.TokenTTL); err != nil {
		ac.logger.Printf("Failed to store session: %v", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    user.Public(),
		"token":   token,
	})
}

// Login handler verifies credentials and issues a bearer token
func (ac *AuthController) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Email and password are required"))
	}

	email, err := utils.SanitizeEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid email format"))
	}

	ac.loginAttemptsMu.RLock()
	attempts, tracked := ac.loginAttempts[email]
	ac.loginAttemptsMu.RUnlock()

	if tracked && attempts.count >= 5 && time.Since(attempts.lastAttempt) < 30*time.Minute {
		return c.JSON(http.StatusTooManyRequests, models.NewError("Too many failed login attempts. Please try again later."))
	}

	user, err := ac.users.FindByEmail(ctx, email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Same response as a wrong password, nothing to enumerate
			return c.JSON(http.StatusUnauthorized, models.NewError("Invalid email or password"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to find user"))
	}

	if err := utils.CheckPassword(req.Password, user.Password); err != nil {
		ac.loginAttemptsMu.Lock()
		ac.loginAttempts[email] = loginAttempt{count: attempts.count + 1, lastAttempt: time.Now()}
		ac.loginAttemptsMu.Unlock()

		return c.JSON(http.StatusUnauthorized, models.NewError("Invalid email or password"))
	}

	ac.loginAttemptsMu.Lock()
	delete(ac.loginAttempts, email)
	ac.loginAttemptsMu.Unlock()

	token, err := middleware.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to generate token"))
	}

	// Session populated at login, cleared at logout
	if err := ac.sessions.Set(ctx, token, user.ID.Hex(), middleware.TokenTTL); err != nil {
		ac.logger.Printf("Failed to store session: %v", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    user.Public(),
		"token":   token,
	})
}

// ChangePassword handler rotates the caller's password
func (ac *AuthController) ChangePassword(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Invalid request body"))
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, models.NewError("Old password and new password are required"))
	}

	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, models.NewError("New password must be at least 6 characters long"))
	}

	if req.OldPassword == req.NewPassword {
		return c.JSON(http.StatusBadRequest, models.NewError("New password must be different from old password"))
	}

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.NewError("Invalid or expired token"))
	}

	user, err := ac.users.FindByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.NewError("User not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to retrieve user"))
	}

	if err := utils.CheckPassword(req.OldPassword, user.Password); err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Old password is incorrect"))
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to hash password"))
	}

	if err := ac.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update password"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

// Logout handler clears the caller's session and revokes the presented token
func (ac *AuthController) Logout(c echo.Context) error {
	tokenValue := c.Get("user")
	token, ok := tokenValue.(*jwt.Token)
	if !ok {
		return c.JSON(http.StatusUnauthorized, models.NewError("Invalid or expired token"))
	}

	remaining := middleware.TokenTTL
	if claims, ok := token.Claims.(*middleware.JwtCustomClaims); ok && claims.ExpiresAt > 0 {
		remaining = time.Until(time.Unix(claims.ExpiresAt, 0))
	}

	if err := ac.sessions.Clear(c.Request().Context(), token.Raw, remaining); err != nil {
		ac.logger.Printf("Failed to clear session: %v", err)
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to log out"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me handler returns the caller's own user document
func (ac *AuthController) Me(c echo.Context) error {
	user, err := utils.GetUserFromToken(c, ac.DB)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.NewError("Invalid or expired token"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    user,
	})
}

// UploadProfileImage handler replaces the caller's profile image
func (ac *AuthController) UploadProfileImage(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userID, err := utils.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.NewError("Invalid or expired token"))
	}

	fh, err := c.FormFile("profileImage")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError("Profile image file is required"))
	}

	path, err := utils.SaveProfileImage(fh)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.NewError(err.Error()))
	}

	if err := ac.users.UpdateProfileImage(ctx, userID, path); err != nil {
		return c.JSON(http.StatusInternalServerError, models.NewError("Failed to update profile image"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Profile image updated successfully",
		"profileImage": path,
	})
}

// Stale failed-attempt counters are dropped hourly
func (ac *AuthController) startLoginAttemptCleanupRoutine() {
	for {
		time.Sleep(1 * time.Hour)
		now := time.Now()
		ac.loginAttemptsMu.Lock()
		for email, attempt := range ac.loginAttempts {
			if now.Sub(attempt.lastAttempt) > 30*time.Minute {
				delete(ac.loginAttempts, email)
			}
		}
		ac.loginAttemptsMu.Unlock()
	}
}
