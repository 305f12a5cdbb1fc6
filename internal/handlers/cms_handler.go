package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type CmsHandler struct {
	db    *db.Manager
	audit *audit.Dispatcher
}

func NewCmsHandler(dbm *db.Manager, auditor *audit.Dispatcher) *CmsHandler {
	return &CmsHandler{db: dbm, audit: auditor}
}

type SetCmsRequest struct {
	Value json.RawMessage `json:"value"`
}

// Get returns the stored value, or null for an unknown key. Reading a
// missing key is not an error for the storefront.
func (h *CmsHandler) Get(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	var content models.CmsContent
	if err := gdb.Where("key = ?", c.Param("key")).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpresp.OK(c, nil)
			return
		}
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.OK(c, content.Value)
}

func (h *CmsHandler) Set(c *gin.Context) {
	var req SetCmsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body")
		return
	}

	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	key := c.Param("key")

	content := models.CmsContent{
		Key:   key,
		Value: models.JSONRaw(req.Value),
	}

	if err := gdb.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&content).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	h.audit.Dispatch(auditEvent(c, "cms_content_updated", "cms_content", key, nil))

	httpresp.OK(c, content.Value)
}
