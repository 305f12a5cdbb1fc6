package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/dto"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httpresp"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

// unpaged audit queries are capped so an unbounded table cannot be dumped in
// one response
const auditUnpagedCap = 500

type AuditLogsHandler struct {
	db *db.Manager
}

func NewAuditLogsHandler(dbm *db.Manager) *AuditLogsHandler {
	return &AuditLogsHandler{db: dbm}
}

var auditSortFields = map[string]string{
	"action":    "action",
	"entity":    "entity",
	"createdAt": "created_at",
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	gdb, ok := requireDB(c, h.db)
	if !ok {
		return
	}

	q := dto.ParseListQuery(c, auditSortFields, "created_at")

	base := gdb.Model(&models.AuditLog{})
	if entity := c.Query("entity"); entity != "" {
		base = base.Where("entity = ?", entity)
	}
	if action := c.Query("action"); action != "" {
		base = base.Where("action = ?", action)
	}
	if actor := c.Query("actor"); actor != "" {
		like := "%" + strings.ToLower(actor) + "%"
		base = base.Where("LOWER(actor_email) LIKE ? OR CAST(actor_id AS TEXT) = ?", like, actor)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at <= ?", *q.To)
	}

	if !q.Paged {
		logs := make([]models.AuditLog, 0)
		if err := base.Order(q.SortClause()).Limit(auditUnpagedCap).Find(&logs).Error; err != nil {
			httperr.ServiceUnavailable(c)
			return
		}
		httpresp.OK(c, logs)
		return
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	logs := make([]models.AuditLog, 0)
	if err := base.Order(q.SortClause()).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&logs).Error; err != nil {
		httperr.ServiceUnavailable(c)
		return
	}

	httpresp.Page(c, logs, total, q.Page, q.Limit, q.PublicSortKey(auditSortFields), q.Order)
}
