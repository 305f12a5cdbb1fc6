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

type BrandHandler struct {
	db    *db.Manager
	audit *audit.Dispatcher
}

func NewBrandHandler(dbm *db.Manager, auditor *audit.Dispatcher) *BrandHandler {
	return &BrandHandler{db: dbm, audit: auditor}
}

// --------- Requests ---------

type CreateBrandRequest struct {
	Type   string                  `json:"type"`
	Name   string                  `json:"name"`
	Slug   string                  `json:"slug"`
	Logo   string                  `json:"logo"`
	Models models.VehicleModelList `json:"models"`
}

type UpdateBrandRequest struct {
	Type   *string                  `json:"type,omitempty"`
	Name   *string                  `json:"name,omitempty"`
	Slug   *string                  `json:"slug,omitempty"`
	Logo   *string                  `json:"logo,omitempty"`
	Models *models.VehicleModelList `json:"models,omitempty"`
}

var brandTypes = map[string]bool{"car": true, "bike": true}

var brandSortFields = map[string]string{
	"name":      "name",
	"type":      "type",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// --------- Handlers ---------

func (h *BrandHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	// brand listing defaults to alphabetic, unlike the other catalogs
	q := dto.ParseListQuery(c, brandSortFields, "name")
	if _, hasOrder := c.GetQuery("order"); !hasOrder && q.SortBy == "name" {
		q.Order = "asc"
	}

	base := gdb.Model(&models.Brand{})
	if t := c.Query("type"); t != "" {
		base = base.Where("type = ?", t)
	}
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	if !q.Paged {
		brands := make([]models.Brand, 0)
		if err := base.Order(q.SortClause()).Find(&brands).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, brands)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	brands := make([]models.Brand, 0)
	if err := base.Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&brands).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, brands, total, q.Page, q.Limit, q.PublicSortKey(brandSortFields), q.Order)
}

func (h *BrandHandler) Create(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Type == "" || req.Name == "" || req.Slug == "" {
		httperr.BadRequest(c, "missing_fields", "type, name, slug are required")
		return
	}
	if !brandTypes[req.Type] {
		httperr.BadRequest(c, "invalid_type", "type must be car or bike")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	brand := models.Brand{
		Type:   req.Type,
		Name:   req.Name,
		Slug:   strings.ToLower(strings.TrimSpace(req.Slug)),
		Logo:   req.Logo,
		Models: req.Models,
	}
	if brand.Models == nil {
		brand.Models = models.VehicleModelList{}
	}

	if err := gdb.Create(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "slug_exists", "Brand slug already exists")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "brand_created", "brand", itoa(brand.ID), map[string]any{
		"slug": brand.Slug,
	}))

	httpresp.Created(c, brand)
}

func (h *BrandHandler) Update(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	id := c.Param("id")

	var brand models.Brand
	if err := gdb.First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "brand_not_found", "Brand not found")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	var req UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Type != nil {
		if !brandTypes[*req.Type] {
			httperr.BadRequest(c, "invalid_type", "type must be car or bike")
			return
		}
		brand.Type = *req.Type
	}
	if req.Name != nil {
		brand.Name = *req.Name
	}
	if req.Slug != nil {
		brand.Slug = strings.ToLower(strings.TrimSpace(*req.Slug))
	}
	if req.Logo != nil {
		brand.Logo = *req.Logo
	}
	if req.Models != nil {
		brand.Models = *req.Models
	}

	if err := gdb.Save(&brand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "slug_exists", "Brand slug already exists")
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "brand_updated", "brand", id, nil))

	httpresp.OK(c, brand)
}

func (h *BrandHandler) Delete(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	id := c.Param("id")

	result := gdb.Delete(&models.Brand{}, "id = ?", id)
	if result.Error != nil {
		httperr.ServiceUnavailable(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "brand_not_found", "Brand not found")
		return
	}

	h.audit.Dispatch(auditEvent(c, "brand_deleted", "brand", id, nil))

	httpresp.OK(c, gin.H{"success": true})
}
