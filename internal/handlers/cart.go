package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/petshop-storefront/internal/apperr"
	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/stock"
	"github.com/yungbote/petshop-storefront/internal/syncer"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// CartHandler exposes the sync coordinator to the browser UI. Stock
// availability is checked here, before the coordinator is invoked, so an
// exhausted product never reaches the cart.
type CartHandler struct {
	log         *logger.Logger
	coordinator *syncer.Coordinator
	ledger      *stock.Ledger
}

func NewCartHandler(coordinator *syncer.Coordinator, ledger *stock.Ledger, log *logger.Logger) *CartHandler {
	return &CartHandler{
		log:         log.With("handler", "CartHandler"),
		coordinator: coordinator,
		ledger:      ledger,
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	RespondOK(c, h.coordinator.Reconcile(c.Request.Context()))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if !h.ledger.Available(req.ProductID, req.Quantity) {
		RespondError(c, http.StatusConflict, "insufficient_stock", apperr.ErrInsufficientStock)
		return
	}
	result, err := h.coordinator.AddItem(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	result, err := h.coordinator.SetQuantity(c.Request.Context(), lineKey(c), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	result, err := h.coordinator.RemoveItem(c.Request.Context(), lineKey(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	RespondOK(c, h.coordinator.Clear(c.Request.Context()))
}

func (h *CartHandler) Checkout(c *gin.Context) {
	result, err := h.coordinator.PlaceOrder(c.Request.Context())
	if err != nil {
		respondCartError(c, err)
		return
	}
	RespondOK(c, result)
}

func (h *CartHandler) GetStock(c *gin.Context) {
	RespondOK(c, gin.H{"stock": h.ledger.Records()})
}

// lineKey reads the line address from the route. ?by=line targets the
// backend-assigned line id, anything else the catalog product id.
func lineKey(c *gin.Context) types.ItemKey {
	id := c.Param("id")
	if c.Query("by") == "line" {
		return types.RemoteLineKey(id)
	}
	return types.CatalogKey(id)
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidQuantity):
		RespondError(c, http.StatusBadRequest, "invalid_quantity", err)
	case errors.Is(err, apperr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperr.ErrRemoteUnavailable):
		RespondError(c, http.StatusConflict, "remote_unavailable", err)
	case errors.Is(err, apperr.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
