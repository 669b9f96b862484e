package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/petshop-storefront/internal/handlers"
)

type RouterConfig struct {
	CartHandler    *handlers.CartHandler
	SessionHandler *handlers.SessionHandler
	CatalogHandler *handlers.CatalogHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Session
	router.GET("/session", cfg.SessionHandler.GetSession)
	router.POST("/session", cfg.SessionHandler.SignIn)
	router.DELETE("/session", cfg.SessionHandler.SignOut)

	// Catalog + stock
	router.GET("/catalog", cfg.CatalogHandler.GetCatalog)
	router.GET("/stock", cfg.CartHandler.GetStock)

	// Cart
	router.GET("/cart", cfg.CartHandler.GetCart)
	router.POST("/cart/items", cfg.CartHandler.AddItem)
	router.PUT("/cart/items/:id", cfg.CartHandler.SetQuantity)
	router.DELETE("/cart/items/:id", cfg.CartHandler.RemoveItem)
	router.DELETE("/cart", cfg.CartHandler.ClearCart)

	// Checkout
	router.POST("/checkout", cfg.CartHandler.Checkout)

	return router
}
