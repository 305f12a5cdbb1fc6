package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/auth"
	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
	"github.com/wheelsup-garage/vehicle-care-api/internal/validators"
)

type AuthHandler struct {
	db     *db.Manager
	config *config.Config
}

func NewAuthHandler(dbm *db.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: dbm, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	PhoneNumber string          `json:"phoneNumber"`
	Address     *models.Address `json:"address"`
	Vehicles    json.RawMessage `json:"vehicles"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.PhoneNumber == "" {
		httperr.BadRequest(c, "missing_fields", "Please fill in all required fields")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, "invalid_email", "Please enter a valid email address")
		return
	}

	if !validators.IsPhoneValid(req.PhoneNumber) {
		httperr.BadRequest(c, "invalid_phone", "Please enter a valid 10-digit phone number")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	// a single combined lookup covers both uniqueness constraints
	var count int64
	if err := gdb.Model(&models.User{}).
		Where("email = ? OR phone_number = ?", email, req.PhoneNumber).
		Count(&count).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "user_exists", "User already exists with this email or phone number")
		return
	}

	if len(req.Password) < 6 {
		httperr.BadRequest(c, "weak_password", "Password must be at least 6 characters long")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		PhoneNumber:  req.PhoneNumber,
		Vehicles:     models.JSONRaw("[]"),
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if len(req.Vehicles) > 0 {
		user.Vehicles = models.JSONRaw(req.Vehicles)
	}

	if err := gdb.Create(&user).Error; err != nil {
		// concurrent duplicate registration loses on the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "user_exists", "User already exists with this email or phone number")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	token, err := auth.GenerateToken(user.ID, h.config.JWTSecret)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token")
		return
	}

	c.JSON(201, gin.H{
		"id":          user.ID,
		"name":        user.Name,
		"email":       user.Email,
		"phoneNumber": user.PhoneNumber,
		"address":     user.Address,
		"vehicles":    user.Vehicles,
		"isAdmin":     user.IsAdmin,
		"token":       token,
	})
}

// Login deliberately answers the same 401 for an unknown email and a wrong
// password, so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := gdb.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, h.config.JWTSecret)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token")
		return
	}

	c.JSON(200, gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"isAdmin": user.IsAdmin,
		"token":   token,
	})
}

// Logout is client-side token deletion; the server holds no session state.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(200, gin.H{"message": "Logged out successfully"})
}

// TestConnection is a liveness echo kept for backwards compatibility with
// older clients.
func (h *AuthHandler) TestConnection(c *gin.Context) {
	c.JSON(200, gin.H{
		"success":   true,
		"message":   "Backend connection successful",
		"timestamp": nowRFC3339(),
	})
}
