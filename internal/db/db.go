package db

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

// ErrUnavailable is returned by Manager.DB until a connection is established.
// Handlers translate it into a 503 so callers know to retry shortly.
var ErrUnavailable = errors.New("database unavailable")

const (
	maxConnectRetries = 10
	retryDelay        = 5 * time.Second
)

// Manager owns the GORM handle. Startup connects with capped retries in the
// background so the process keeps serving (and failing requests with 503)
// while the store is unreachable, instead of crashing.
type Manager struct {
	mu sync.RWMutex
	db *gorm.DB
}

// Connect returns immediately; the connection attempt loop runs in the
// background. The first attempt is made synchronously so that a healthy
// store is usable before the server starts listening.
func Connect(cfg *config.Config, log *logrus.Logger) *Manager {
	m := &Manager{}

	if err := m.tryConnect(cfg); err == nil {
		return m
	}

	go func() {
		for attempt := 2; attempt <= maxConnectRetries; attempt++ {
			time.Sleep(retryDelay)

			err := m.tryConnect(cfg)
			if err == nil {
				log.Info("database connected")
				return
			}
			log.WithError(err).Warnf("database connection attempt %d/%d failed", attempt, maxConnectRetries)
		}
		log.Error("max database connection retries reached; requests will fail with 503 until connectivity is restored")
	}()

	return m
}

func (m *Manager) tryConnect(cfg *config.Config) error {
	gdb, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		return errors.Wrap(err, "open database")
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return errors.Wrap(err, "unwrap sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(gdb); err != nil {
		return errors.Wrap(err, "migrate")
	}

	m.mu.Lock()
	m.db = gdb
	m.mu.Unlock()
	return nil
}

// NewWithDB wraps an already-open handle. Used by the seed command and tests.
func NewWithDB(gdb *gorm.DB) *Manager {
	return &Manager{db: gdb}
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.Payment{},
		&models.Service{},
		&models.Brand{},
		&models.PricingRule{},
		&models.CmsContent{},
		&models.AuditLog{},
	)
}

// DB returns the live handle, or ErrUnavailable while disconnected.
func (m *Manager) DB() (*gorm.DB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.db == nil {
		return nil, ErrUnavailable
	}
	return m.db, nil
}

func (m *Manager) Healthy() bool {
	gdb, err := m.DB()
	if err != nil {
		return false
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
