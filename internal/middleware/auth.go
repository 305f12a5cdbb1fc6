package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wheelsup-garage/vehicle-care-api/internal/auth"
	"github.com/wheelsup-garage/vehicle-care-api/internal/config"
	"github.com/wheelsup-garage/vehicle-care-api/internal/db"
	"github.com/wheelsup-garage/vehicle-care-api/internal/httperr"
	"github.com/wheelsup-garage/vehicle-care-api/internal/models"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextIsAdmin   = "isAdmin"
)

// Auth verifies the bearer token and resolves its subject to a live user
// record; a token whose subject no longer exists is as unauthenticated as a
// bad signature.
func Auth(cfg *config.Config, dbm *db.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error_code": "missing_authorization_header", "message": "Not authorized, no token"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(401, gin.H{"error_code": "invalid_authorization_header", "message": "Not authorized, no token"})
			return
		}

		userID, err := auth.ParseToken(parts[1], cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error_code": "invalid_token", "message": "Not authorized, token failed"})
			return
		}

		gdb, err := dbm.DB()
		if err != nil {
			httperr.ServiceUnavailable(c)
			c.Abort()
			return
		}

		var user models.User
		if err := gdb.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(401, gin.H{"error_code": "invalid_token", "message": "Not authorized, token failed"})
				return
			}
			httperr.ServiceUnavailable(c)
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextIsAdmin, user.IsAdmin)

		c.Next()
	}
}

// AdminOnly composes after Auth and rejects non-administrators.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			httperr.Forbidden(c, "admin_only", "Not authorized as an admin")
			c.Abort()
			return
		}
		c.Next()
	}
}
