package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
)

// Recovery converts panics into a JSON 500. The stack is included in the
// body outside production mode only.
func Recovery(cfg *config.Config, log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		stack := string(debug.Stack())
		log.WithFields(logrus.Fields{
			"panic":      recovered,
			"request_id": c.GetString(ContextRequestID),
			"path":       c.Request.URL.Path,
		}).Error("panic recovered")

		body := gin.H{"message": "Internal server error"}
		if !cfg.IsProduction() {
			body["stack"] = stack
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
	})
}
