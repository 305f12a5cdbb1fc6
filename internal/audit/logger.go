package audit

import (
	"github.com/sirupsen/logrus"

	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

type Event struct {
	ActorID    *uint
	ActorEmail string

	Action   string
	Entity   string
	EntityID string

	Metadata map[string]any

	IP        string
	UserAgent string
}

type Logger struct {
	db  *db.Manager
	log *logrus.Logger
}

func New(dbm *db.Manager, log *logrus.Logger) *Logger {
	return &Logger{db: dbm, log: log}
}

// Log appends one audit record. Failures are reported to the caller so the
// dispatcher can log them, but callers never surface them to the business
// flow.
func (l *Logger) Log(ev Event) error {
	gdb, err := l.db.DB()
	if err != nil {
		return err
	}

	record := models.AuditLog{
		ActorID:    ev.ActorID,
		ActorEmail: ev.ActorEmail,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   models.JSONMap(ev.Metadata),
		IP:         ev.IP,
		UserAgent:  ev.UserAgent,
	}

	return gdb.Create(&record).Error
}
