package cartapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/petshop-storefront/internal/apperr"
	"github.com/yungbote/petshop-storefront/internal/logger"
)

func newTestClient(t *testing.T, handler http.Handler, token string, onUnauthorized func()) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, func() string { return token }, onUnauthorized, logger.NewNop())
}

func TestFetchCartMapsSpanishAliases(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/cart", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cart_items":[
			{"id":17,"product":{"id":3,"nombre":"Collar","precio":12.5,"imagen":"collar.png"},"quantity":2},
			{"id":"18","product":{"id":"4","name":"Shampoo","price":8,"image":"shampoo.png"},"quantity":1}
		]}`))
	})
	c := newTestClient(t, handler, "tok", nil)

	items, err := c.FetchCart(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "3", items[0].ProductID)
	require.Equal(t, "17", items[0].RemoteLineID)
	require.Equal(t, "Collar", items[0].Name)
	require.Equal(t, 12.5, items[0].UnitPrice)
	require.Equal(t, "collar.png", items[0].Image)
	require.Equal(t, 2, items[0].Quantity)

	require.Equal(t, "4", items[1].ProductID)
	require.Equal(t, "Shampoo", items[1].Name)
}

func TestRequestsCarryBearerToken(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"cart_items":[]}`))
	})
	c := newTestClient(t, handler, "abc123", nil)

	_, err := c.FetchCart(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc123", gotAuth)
}

func TestUnauthorizedClearsCredential(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	cleared := false
	c := newTestClient(t, handler, "expired", func() { cleared = true })

	_, err := c.FetchCart(context.Background())
	require.ErrorIs(t, err, apperr.ErrUnauthorized)
	require.True(t, cleared, "401 must fire the credential hook")
}

func TestAddItemSendsBodyAndDecodesCart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/cart/add", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"cart_items":[{"id":1,"product":{"id":"p1","name":"Treats","price":3},"quantity":4}]}`))
	})
	c := newTestClient(t, handler, "tok", nil)

	items, err := c.AddItem(context.Background(), "p1", 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "p1", items[0].ProductID)
	require.Equal(t, 4, items[0].Quantity)
}

func TestMissingCartPayloadIsInconclusive(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "unrelated json", body: `{"message":"removed"}`},
		{name: "not json", body: "ok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			c := newTestClient(t, handler, "tok", nil)
			_, err := c.RemoveItem(context.Background(), "line-1")
			require.ErrorIs(t, err, apperr.ErrNoCartPayload)
		})
	}
}

func TestEmptyCartArrayIsAValidCart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cart_items":[]}`))
	})
	c := newTestClient(t, handler, "tok", nil)
	items, err := c.FetchCart(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestRetriesOnceOnServerError(t *testing.T) {
	attempts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"cart_items":[]}`))
	})
	c := newTestClient(t, handler, "tok", nil)

	items, err := c.FetchCart(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
	require.Equal(t, 2, attempts)
}

func TestPersistentServerErrorSurfaces(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, handler, "tok", nil)

	_, err := c.FetchCart(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, apperr.ErrNoCartPayload))
}
