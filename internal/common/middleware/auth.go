package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universal-shop-backend/internal/common/config"
)

// RequireAdmin gates admin endpoints on the configured ADMIN_IDS list.
func RequireAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramUser, ok := TelegramUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		if !cfg.IsAdmin(telegramUser.ID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
