package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/audit"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
)

// requireDB resolves the managed connection or answers 503. A store outage
// is a retryable condition, never a caller fault.
func requireDB(c *gin.Context, dbm *db.Manager) (*gorm.DB, bool) {
	gdb, err := dbm.DB()
	if err != nil {
		httperr.ServiceUnavailable(c)
		return nil, false
	}
	return gdb, true
}

// auditEvent fills actor and request fields from the gin context.
func auditEvent(c *gin.Context, action, entity, entityID string, metadata map[string]any) audit.Event {
	ev := audit.Event{
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   metadata,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActorEmail: c.GetString(middleware.ContextUserEmail),
	}
	if id, ok := c.Get(middleware.ContextUserID); ok {
		if uid, ok := id.(uint); ok {
			ev.ActorID = &uid
		}
	}
	return ev
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
