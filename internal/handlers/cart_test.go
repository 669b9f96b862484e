package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/petshop-storefront/internal/cache"
	"github.com/yungbote/petshop-storefront/internal/cartstore"
	"github.com/yungbote/petshop-storefront/internal/clients/cartapi"
	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/session"
	"github.com/yungbote/petshop-storefront/internal/stock"
	"github.com/yungbote/petshop-storefront/internal/syncer"
	"github.com/yungbote/petshop-storefront/internal/types"
)

func newCartTestRouter(t *testing.T) (*gin.Engine, *stock.Ledger) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	products := []types.Product{{ID: "food", Name: "Dog Food", Price: 20, AvailableQty: 3}}
	ledger := stock.NewLedger(products, log)
	store := cartstore.New(log)
	sessions := session.NewStore(log)

	// Guest mode throughout; the backend is never reached, so a client
	// pointed at a dead address is enough.
	api := cartapi.NewClient("http://127.0.0.1:0", 0, sessions.Token, sessions.Clear, log)
	coordinator := syncer.NewCoordinator(store, ledger, cache.NewMemory(), sessions, api, products, log)

	h := NewCartHandler(coordinator, ledger, log)
	router := gin.New()
	router.POST("/cart/items", h.AddItem)
	router.PUT("/cart/items/:id", h.SetQuantity)
	router.GET("/cart", h.GetCart)
	return router, ledger
}

func postJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddItemEndpoint(t *testing.T) {
	router, ledger := newCartTestRouter(t)

	w := postJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": "food", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	var result syncer.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.True(t, result.HandledLocally)
	require.Len(t, result.State.Items, 1)
	require.Equal(t, 1, ledger.Remaining("food"))
}

func TestAddItemRejectsExhaustedStock(t *testing.T) {
	router, _ := newCartTestRouter(t)

	w := postJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": "food", "quantity": 4})
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "insufficient_stock", envelope.Error.Code)
}

func TestSetQuantityEndpointRejectsZero(t *testing.T) {
	router, _ := newCartTestRouter(t)

	w := postJSON(t, router, http.MethodPost, "/cart/items", gin.H{"product_id": "food", "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, http.MethodPut, "/cart/items/food", gin.H{"quantity": 0})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
