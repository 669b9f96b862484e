package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

type CatalogHandler struct {
	log      *logger.Logger
	products []types.Product
}

func NewCatalogHandler(products []types.Product, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		log:      log.With("handler", "CatalogHandler"),
		products: products,
	}
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	RespondOK(c, gin.H{"products": h.products})
}
