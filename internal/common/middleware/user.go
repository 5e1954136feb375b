package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universal-shop-backend/internal/common/logger"
	"universal-shop-backend/internal/features/user/models"
	"universal-shop-backend/internal/features/user/service"
)

const appUserContextKey = "app_user"

// AutoCreateUser upserts the authenticated Telegram user on every request,
// so catalog and order handlers can rely on the users row existing.
func AutoCreateUser(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		telegramUser, ok := TelegramUser(c)
		if !ok {
			c.Next()
			return
		}

		user, err := userService.GetOrCreateUser(c.Request.Context(), telegramUser.ID, telegramUser.Username, telegramUser.FirstName, telegramUser.LastName)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", telegramUser.ID).Msg("Failed to auto-create user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create/update user"})
			return
		}

		c.Set(appUserContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the persisted user set by AutoCreateUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(appUserContextKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}
