package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	dbpkg "github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/middleware"
	"github.com/wheelsup-garage/vehicle-care-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := newLogger(cfg)

	if cfg.JWTSecretIsDefault() {
		log.Warn("JWT_SECRET is the insecure development default; set JWT_SECRET before exposing this deployment")
	}

	dbm := dbpkg.Connect(cfg, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(cfg, log))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		if !dbm.Healthy() {
			status = "degraded"
		}
		c.JSON(200, gin.H{"status": status})
	})

	routes.RegisterRoutes(r, dbm, cfg, log)

	log.Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		// e.g. port already bound; the only class of failure that kills the process
		log.Fatalf("failed to start server: %v", err)
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if cfg.IsProduction() {
		log.SetFormatter(new(logrus.JSONFormatter))
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(new(logrus.TextFormatter))
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
