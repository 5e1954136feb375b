package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/common/errors"
	"universal-shop-backend/internal/common/middleware"
	"universal-shop-backend/internal/features/catalog/models"
	"universal-shop-backend/internal/features/catalog/service"
	viewservice "universal-shop-backend/internal/features/viewhistory/service"
)

type CatalogHandler struct {
	service     service.CatalogService
	viewHistory viewservice.ViewHistoryService
	cfg         *config.Config
}

func NewCatalogHandler(catalogService service.CatalogService, viewHistory viewservice.ViewHistoryService, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		service:     catalogService,
		viewHistory: viewHistory,
		cfg:         cfg,
	}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.getDashboard)
	router.GET("/games", h.listGames)
	router.GET("/apps", h.listApps)
	router.GET("/products", h.listProducts)
	router.GET("/games/:id/products", h.listGameProducts)
	router.GET("/apps/:id/products", h.listAppProducts)

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(h.cfg))
	{
		admin.POST("/games", h.createGame)
		admin.POST("/apps", h.createApp)
		admin.POST("/products", h.createProduct)
	}
}

// DashboardResponse aggregates everything the Mini App home screen needs.
type DashboardResponse struct {
	User        interface{}       `json:"user"`
	Games       []*models.Game    `json:"games"`
	Apps        []*models.App     `json:"apps"`
	LastViewed  *models.Product   `json:"last_viewed"`
	AllProducts []*models.Product `json:"all_products"`
}

// @Summary Dashboard
// @Description Active games, apps, products and the user's last viewed product.
// @Tags catalog
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *CatalogHandler) getDashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
		return
	}

	ctx := c.Request.Context()

	games, err := h.service.GetGames(ctx)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	apps, err := h.service.GetApps(ctx)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	products, err := h.service.GetProducts(ctx)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	lastViewed, err := h.viewHistory.GetLastViewed(ctx, user.ID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		User:        user,
		Games:       games,
		Apps:        apps,
		LastViewed:  lastViewed,
		AllProducts: products,
	})
}

func (h *CatalogHandler) listGames(c *gin.Context) {
	games, err := h.service.GetGames(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *CatalogHandler) listApps(c *gin.Context) {
	apps, err := h.service.GetApps(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *CatalogHandler) listProducts(c *gin.Context) {
	products, err := h.service.GetProducts(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) listGameProducts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("id", "invalid game id"))
		return
	}

	products, err := h.service.GetGameProducts(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *CatalogHandler) listAppProducts(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.AbortWithError(c, errors.NewValidationError("id", "invalid app id"))
		return
	}

	products, err := h.service.GetAppProducts(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Create game
// @Description Create a new catalog game section (admin only).
// @Tags admin
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Router /admin/games [post]
func (h *CatalogHandler) createGame(c *gin.Context) {
	var input models.GameCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid game payload"))
		return
	}

	game, err := h.service.CreateGame(c.Request.Context(), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

func (h *CatalogHandler) createApp(c *gin.Context) {
	var input models.AppCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid app payload"))
		return
	}

	app, err := h.service.CreateApp(c.Request.Context(), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *CatalogHandler) createProduct(c *gin.Context) {
	var input models.ProductCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeValidation, "Invalid product payload"))
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), input)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}
