package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/dto"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
	"github.com/wheelsup-garage/vehicle-care-api/internal/validators"
)

type UserHandler struct {
	db     *db.Manager
	config *config.Config
	audit  *audit.Dispatcher
}

func NewUserHandler(dbm *db.Manager, cfg *config.Config, auditor *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: dbm, config: cfg, audit: auditor}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	Name        *string         `json:"name,omitempty"`
	Email       *string         `json:"email,omitempty"`
	Password    *string         `json:"password,omitempty"`
	PhoneNumber *string         `json:"phoneNumber,omitempty"`
	Address     *models.Address `json:"address,omitempty"`
	Vehicles    json.RawMessage `json:"vehicles,omitempty"`
}

type UpdateRoleRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

var userSortFields = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"isAdmin":   "is_admin",
}

// --------- Handlers ---------

func (h *UserHandler) GetProfile(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := gdb.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.OK(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := gdb.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validators.IsEmailValid(email) {
			httperr.BadRequest(c, "invalid_email", "Please enter a valid email address")
			return
		}
		user.Email = email
	}
	if req.PhoneNumber != nil {
		if !validators.IsPhoneValid(*req.PhoneNumber) {
			httperr.BadRequest(c, "invalid_phone", "Please enter a valid 10-digit phone number")
			return
		}
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			httperr.BadRequest(c, "weak_password", "Password must be at least 6 characters long")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not process password")
			return
		}
		user.PasswordHash = string(hashed)
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if len(req.Vehicles) > 0 {
		user.Vehicles = models.JSONRaw(req.Vehicles)
	}

	if err := gdb.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "user_exists", "User already exists with this email or phone number")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.OK(c, user)
}

// UploadAvatar stores the uploaded image under a deterministic per-user
// filename so a re-upload replaces the previous avatar.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, err := c.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Avatar file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
	default:
		httperr.BadRequest(c, "unsupported_file_type", "Avatar must be an image file")
		return
	}

	filename := fmt.Sprintf("avatar_%d%s", userID, ext)
	dst := filepath.Join(h.config.UploadDir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		httperr.Internal(c, "failed_to_store_avatar", "Could not store avatar")
		return
	}

	avatarPath := "/uploads/" + filename
	if err := gdb.Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar", avatarPath).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.OK(c, gin.H{"avatar": avatarPath})
}

// List is the admin user listing; the password hash is excluded by the
// model's JSON mapping.
func (h *UserHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	q := dto.ParseListQuery(c, userSortFields, "created_at")

	base := gdb.Model(&models.User{})
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at <= ?", *q.To)
	}

	if !q.Paged {
		users := make([]models.User, 0)
		if err := base.Order(q.SortClause()).Find(&users).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, users)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	users := make([]models.User, 0)
	if err := base.Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&users).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, users, total, q.Page, q.Limit, q.PublicSortKey(userSortFields), q.Order)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAdmin == nil {
		httperr.BadRequest(c, "invalid_request", "isAdmin is required")
		return
	}

	var user models.User
	if err := gdb.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	user.IsAdmin = *req.IsAdmin
	if err := gdb.Save(&user).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "user_role_updated", "user", strconv.FormatUint(id, 10), map[string]any{
		"isAdmin": *req.IsAdmin,
	}))

	httpresp.OK(c, user)
}
