package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/dto"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type ServiceHandler struct {
	db    *db.Manager
	audit *audit.Dispatcher
}

func NewServiceHandler(dbm *db.Manager, auditor *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: dbm, audit: auditor}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	HowItWorks  string  `json:"howItWorks"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	HowItWorks  *string  `json:"howItWorks,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

var serviceSortFields = map[string]string{
	"title":     "title",
	"price":     "price",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	q := dto.ParseListQuery(c, serviceSortFields, "created_at")

	base := gdb.Model(&models.Service{})
	if category := c.Query("category"); category != "" {
		base = base.Where("category = ?", category)
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at <= ?", *q.To)
	}

	if !q.Paged {
		services := make([]models.Service, 0)
		if err := base.Order(q.SortClause()).Find(&services).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, services)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	services := make([]models.Service, 0)
	if err := base.Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&services).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, services, total, q.Page, q.Limit, q.PublicSortKey(serviceSortFields), q.Order)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Title == "" || req.Description == "" {
		httperr.BadRequest(c, "missing_fields", "title and description are required")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	service := models.Service{
		Title:       req.Title,
		Description: req.Description,
		HowItWorks:  req.HowItWorks,
		Image:       req.Image,
		Price:       req.Price,
		Category:    req.Category,
	}

	if err := gdb.Create(&service).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "service_created", "service", itoa(service.ID), map[string]any{
		"title": service.Title,
	}))

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	id := c.Param("id")

	var service models.Service
	if err := gdb.First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.HowItWorks != nil {
		service.HowItWorks = *req.HowItWorks
	}
	if req.Image != nil {
		service.Image = *req.Image
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = *req.Category
	}

	if err := gdb.Save(&service).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "service_updated", "service", id, nil))

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	id := c.Param("id")

	result := gdb.Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		httperr.ServiceUnavailable(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return
	}

	h.audit.Dispatch(auditEvent(c, "service_deleted", "service", id, nil))

	httpresp.OK(c, gin.H{"success": true})
}
