package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/dto"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type PricingHandler struct {
	db    *db.Manager
	audit *audit.Dispatcher
}

func NewPricingHandler(dbm *db.Manager, auditor *audit.Dispatcher) *PricingHandler {
	return &PricingHandler{db: dbm, audit: auditor}
}

// --------- Requests ---------

type UpsertPricingRequest struct {
	Scope    string         `json:"scope"`
	RefID    string         `json:"refId"`
	Price    *float64       `json:"price"`
	Currency string         `json:"currency"`
	Metadata map[string]any `json:"metadata"`
}

type DeletePricingRequest struct {
	Scope string `json:"scope"`
	RefID string `json:"refId"`
}

var pricingScopes = map[string]bool{"service": true, "brand": true, "model": true}

var pricingSortFields = map[string]string{
	"scope":     "scope",
	"price":     "price",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// --------- Handlers ---------

func (h *PricingHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	q := dto.ParseListQuery(c, pricingSortFields, "created_at")

	base := gdb.Model(&models.PricingRule{})
	if scope := c.Query("scope"); scope != "" {
		base = base.Where("scope = ?", scope)
	}

	if !q.Paged {
		rules := make([]models.PricingRule, 0)
		if err := base.Order(q.SortClause()).Find(&rules).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, rules)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	rules := make([]models.PricingRule, 0)
	if err := base.Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&rules).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, rules, total, q.Page, q.Limit, q.PublicSortKey(pricingSortFields), q.Order)
}

// Upsert writes by the (scope, refId) natural key.
func (h *PricingHandler) Upsert(c *gin.Context) {
	var req UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	if req.Scope == "" || req.RefID == "" || req.Price == nil {
		httperr.BadRequest(c, "missing_fields", "scope, refId, price required")
		return
	}
	if !pricingScopes[req.Scope] {
		httperr.BadRequest(c, "invalid_scope", "scope must be service, brand or model")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}

	rule := models.PricingRule{
		Scope:    req.Scope,
		RefID:    req.RefID,
		Price:    *req.Price,
		Currency: currency,
		Metadata: models.JSONMap(req.Metadata),
	}
	if rule.Metadata == nil {
		rule.Metadata = models.JSONMap{}
	}

	if err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "ref_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "currency", "metadata", "updated_at"}),
	}).Create(&rule).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	// re-read so the response carries the stored row regardless of which
	// branch of the upsert ran
	var stored models.PricingRule
	if err := gdb.Where("scope = ? AND ref_id = ?", req.Scope, req.RefID).
		First(&stored).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "pricing_rule_upserted", "pricing_rule", req.Scope+":"+req.RefID, map[string]any{
		"price": *req.Price,
	}))

	httpresp.OK(c, stored)
}

func (h *PricingHandler) Delete(c *gin.Context) {
	var req DeletePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Scope == "" || req.RefID == "" {
		httperr.BadRequest(c, "missing_fields", "scope, refId required")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	if err := gdb.Where("scope = ? AND ref_id = ?", req.Scope, req.RefID).
		Delete(&models.PricingRule{}).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "pricing_rule_deleted", "pricing_rule", req.Scope+":"+req.RefID, nil))

	httpresp.OK(c, gin.H{"success": true})
}
