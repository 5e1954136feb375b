package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/middleware"
	"universal-shop-backend/internal/features/viewhistory/service"
)

type ViewHistoryHandler struct {
	service service.ViewHistoryService
}

func NewViewHistoryHandler(viewService service.ViewHistoryService) *ViewHistoryHandler {
	return &ViewHistoryHandler{service: viewService}
}

func (h *ViewHistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/products/:id/view", h.recordView)
	router.DELETE("/view-history/:id", h.deleteView)
}

// @Summary Record product view
// @Description Mark a product as viewed by the current user.
// @Tags view-history
// @Produce json
// @Security TelegramInitData
// @Router /products/{id}/view [post]
func (h *ViewHistoryHandler) recordView(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("id", "invalid product id"))
		return
	}

	if err := h.service.RecordView(c.Request.Context(), user.ID, productID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary Delete view history entry
// @Description Remove a product from the current user's view history.
// @Tags view-history
// @Produce json
// @Security TelegramInitData
// @Router /view-history/{id} [delete]
func (h *ViewHistoryHandler) deleteView(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("id", "invalid product id"))
		return
	}

	deleted, err := h.service.DeleteView(c.Request.Context(), user.ID, productID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"deleted_count": deleted,
	})
}
