package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/middleware"
	"universal-shop-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
	cfg     *config.Config
}

func NewUserHandler(userService service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		service: userService,
		cfg:     cfg,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(h.cfg))
	{
		admin.GET("/users/:id", h.getUser)
	}
}

// @Summary Get current user
// @Description Get or create current user based on Telegram init data.
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.User "User data"
// @Failure 401 {object} middleware.ErrorResponse "Missing init data"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Get user by ID
// @Description Look up a customer by Telegram ID (admin only).
// @Tags admin
// @Produce json
// @Security TelegramInitData
// @Router /admin/users/{id} [get]
func (h *UserHandler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("id", "invalid user id"))
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, errors.New(errors.ErrCodeUserNotFound, "User not found").WithDetail("user_id", id))
		return
	}

	c.JSON(http.StatusOK, user)
}
