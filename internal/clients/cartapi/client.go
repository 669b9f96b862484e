package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/petshop-storefront/internal/apperr"
	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/pkg/httpx"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// Client is the thin RPC-style client for the remote cart resource. Every
// mutation returns the backend's full cart snapshot so the caller can
// reconcile; apperr.ErrNoCartPayload signals a success response whose body
// carried no usable cart.
type Client interface {
	FetchCart(ctx context.Context) ([]types.CartItem, error)
	AddItem(ctx context.Context, productID string, quantity int) ([]types.CartItem, error)
	UpdateQuantity(ctx context.Context, lineID string, quantity int) ([]types.CartItem, error)
	RemoveItem(ctx context.Context, lineID string) ([]types.CartItem, error)
	ClearCart(ctx context.Context) error
	PlaceOrder(ctx context.Context) error
}

type client struct {
	log            *logger.Logger
	baseURL        string
	httpClient     *http.Client
	token          func() string
	onUnauthorized func()
	maxRetries     int
}

// NewClient builds the cart client. token supplies the current bearer
// token per call (the credential can rotate mid-session); onUnauthorized
// fires once per 401 so the session layer can drop the credential.
func NewClient(baseURL string, timeout time.Duration, token func() string, onUnauthorized func(), log *logger.Logger) Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		log:            log.With("client", "CartAPI"),
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout},
		token:          token,
		onUnauthorized: onUnauthorized,
		maxRetries:     1,
	}
}

func (c *client) FetchCart(ctx context.Context) ([]types.CartItem, error) {
	return c.doCart(ctx, http.MethodGet, "/cart", nil)
}

func (c *client) AddItem(ctx context.Context, productID string, quantity int) ([]types.CartItem, error) {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	return c.doCart(ctx, http.MethodPost, "/cart/add", body)
}

func (c *client) UpdateQuantity(ctx context.Context, lineID string, quantity int) ([]types.CartItem, error) {
	body := map[string]any{"quantity": quantity}
	return c.doCart(ctx, http.MethodPut, "/cart/items/"+lineID, body)
}

func (c *client) RemoveItem(ctx context.Context, lineID string) ([]types.CartItem, error) {
	return c.doCart(ctx, http.MethodDelete, "/cart/items/"+lineID, nil)
}

func (c *client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/cart", nil)
	return err
}

func (c *client) PlaceOrder(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/orders", nil)
	return err
}

// doCart issues the request and maps the returned cart payload.
func (c *client) doCart(ctx context.Context, method, path string, body any) ([]types.CartItem, error) {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	items, ok := decodeCart(raw)
	if !ok {
		return nil, apperr.ErrNoCartPayload
	}
	return items, nil
}

func (c *client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(httpx.Jitter(500 * time.Millisecond)):
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if httpx.IsRetryableError(err) {
				continue
			}
			return nil, err
		}

		raw, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			c.log.Warn("cart request rejected, clearing credential", "path", path)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			return nil, apperr.ErrUnauthorized
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				return nil, readErr
			}
			return raw, nil
		default:
			lastErr = fmt.Errorf("cart api %s %s: status %d", method, path, resp.StatusCode)
			if httpx.IsRetryableStatus(resp.StatusCode) {
				continue
			}
			return nil, lastErr
		}
	}
	return nil, lastErr
}
