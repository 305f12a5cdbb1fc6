package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/dto"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type BookingHandler struct {
	db    *db.Manager
	audit *audit.Dispatcher
}

func NewBookingHandler(dbm *db.Manager, auditor *audit.Dispatcher) *BookingHandler {
	return &BookingHandler{db: dbm, audit: auditor}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	VehicleType  string `json:"vehicleType"`
	VehicleModel string `json:"vehicleModel"`
	ServiceType  string `json:"serviceType"`
	Date         string `json:"date"`
	TimeSlot     string `json:"timeSlot"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var bookingStatuses = map[string]bool{
	"upcoming":  true,
	"completed": true,
	"cancelled": true,
}

var bookingSortFields = map[string]string{
	"date":      "date",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// --------- Handlers ---------

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Name == "" || req.Phone == "" || req.Email == "" ||
		req.VehicleType == "" || req.VehicleModel == "" || req.ServiceType == "" ||
		req.Date == "" || req.TimeSlot == "" || req.Address == "" {
		httperr.BadRequest(c, "missing_fields", "Missing required booking fields")
		return
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid booking date")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	booking := models.Booking{
		UserID:       userID,
		Name:         req.Name,
		PhoneNumber:  req.Phone,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		VehicleType:  req.VehicleType,
		VehicleModel: req.VehicleModel,
		ServiceType:  req.ServiceType,
		Date:         date,
		TimeSlot:     req.TimeSlot,
		Address:      req.Address,
		Notes:        req.Notes,
		Status:       "upcoming",
	}

	if err := gdb.Create(&booking).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Created(c, booking)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings := make([]models.Booking, 0)
	if err := gdb.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.OK(c, bookings)
}

func (h *BookingHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	q := dto.ParseListQuery(c, bookingSortFields, "created_at")

	base := gdb.Model(&models.Booking{})
	if status := c.Query("status"); status != "" {
		base = base.Where("status = ?", status)
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone_number LIKE ?",
			like, like, like,
		)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at <= ?", *q.To)
	}

	if !q.Paged {
		bookings := make([]models.Booking, 0)
		if err := base.Preload("User").Order(q.SortClause()).Find(&bookings).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, bookings)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	bookings := make([]models.Booking, 0)
	if err := base.Preload("User").
		Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&bookings).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, bookings, total, q.Page, q.Limit, q.PublicSortKey(bookingSortFields), q.Order)
}

// UpdateStatus allows any transition within the enum; operators do reopen
// cancelled bookings.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !bookingStatuses[req.Status] {
		httperr.BadRequest(c, "invalid_status", "Invalid status")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	id := c.Param("id")

	var booking models.Booking
	if err := gdb.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "booking_not_found", "Booking not found")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	booking.Status = req.Status
	if err := gdb.Save(&booking).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "booking_status_updated", "booking", id, map[string]any{
		"status": req.Status,
	}))

	httpresp.OK(c, booking)
}

// parseBookingDate accepts RFC 3339 or a bare date.
func parseBookingDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
