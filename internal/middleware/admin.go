package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keylounge/keylounge-backend/internal/common"
	"github.com/keylounge/keylounge-backend/internal/domain"
)

// RequireAdmin checks that the authenticated user has admin level
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		level := GetUserLevel(c)
		if level < domain.AdminLevel {
			common.ErrorResponse(c, http.StatusForbidden, "administrator access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
