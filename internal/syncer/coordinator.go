package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/petshop-storefront/internal/apperr"
	"github.com/yungbote/petshop-storefront/internal/cache"
	"github.com/yungbote/petshop-storefront/internal/cartstore"
	"github.com/yungbote/petshop-storefront/internal/clients/cartapi"
	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/session"
	"github.com/yungbote/petshop-storefront/internal/stock"
	"github.com/yungbote/petshop-storefront/internal/types"
)

const persistTimeout = 3 * time.Second

// Result reports how a cart operation was settled.
type Result struct {
	Mode           types.SessionMode `json:"mode"`
	HandledLocally bool              `json:"handled_locally"`
	State          types.CartState   `json:"state"`
}

// Coordinator orchestrates every cart mutation across the in-memory
// store, the advisory stock ledger, the persistent cache, and the remote
// cart service. Mutations apply a local projection first and treat the
// remote response as a confirmation that is dropped when a newer local
// mutation has happened in between. Remote failure is never fatal: the
// operation degrades to the local projection and the error is only
// logged.
type Coordinator struct {
	log     *logger.Logger
	store   *cartstore.Store
	ledger  *stock.Ledger
	cache   cache.Store
	session *session.Store
	api     cartapi.Client
	catalog map[string]types.Product
}

func NewCoordinator(
	store *cartstore.Store,
	ledger *stock.Ledger,
	cacheStore cache.Store,
	sessionStore *session.Store,
	api cartapi.Client,
	products []types.Product,
	log *logger.Logger,
) *Coordinator {
	catalog := make(map[string]types.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	c := &Coordinator{
		log:     log.With("component", "SyncCoordinator"),
		store:   store,
		ledger:  ledger,
		cache:   cacheStore,
		session: sessionStore,
		api:     api,
		catalog: catalog,
	}

	// Write-through: every store change overwrites the cached cart in
	// full, detached from the caller's context so a cancelled request
	// cannot leave the cache behind the store.
	store.OnChange(func(state types.CartState) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := c.cache.Save(ctx, state.Items); err != nil {
			c.log.Warn("cart cache write failed", "error", err)
		}
	})

	return c
}

// Hydrate fills the store at session start: the cached cart first, then
// one authoritative remote snapshot when the session is backend-backed.
// Cache and remote are read concurrently; neither failure is fatal.
func (c *Coordinator) Hydrate(ctx context.Context) Result {
	mode := c.session.Resolve()

	var (
		cached    []types.CartItem
		cacheErr  error
		remote    []types.CartItem
		remoteErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cached, cacheErr = c.cache.Load(gctx)
		return nil
	})
	if mode == types.RemoteAuth {
		g.Go(func() error {
			remote, remoteErr = c.api.FetchCart(gctx)
			return nil
		})
	}
	_ = g.Wait()

	if cacheErr != nil {
		c.log.Warn("cart cache read failed, starting empty", "error", cacheErr)
		cached = []types.CartItem{}
	}
	state, rev := c.store.Dispatch(cartstore.SetCart(cached))

	if mode == types.RemoteAuth {
		if remoteErr != nil {
			c.log.Warn("startup cart fetch failed, keeping cached cart", "error", remoteErr)
			return Result{Mode: mode, HandledLocally: true, State: state}
		}
		if c.store.ConfirmSetCart(rev, c.carryDisplayFields(remote)) {
			return Result{Mode: mode, State: c.store.State()}
		}
	}
	return Result{Mode: mode, HandledLocally: mode != types.RemoteAuth, State: c.store.State()}
}

// AddItem puts quantity units of the product into the cart. Stock
// availability is the caller's check; this only enforces quantity >= 1.
func (c *Coordinator) AddItem(ctx context.Context, productID string, quantity int) (Result, error) {
	if quantity < 1 {
		return Result{}, fmt.Errorf("add %s: %w", productID, apperr.ErrInvalidQuantity)
	}
	item := c.newItem(productID, quantity)
	mode := c.session.Resolve()

	// Local projection first; the user sees the add immediately.
	state, rev := c.store.Dispatch(cartstore.AddItem(item))
	c.ledger.Decrement(productID, quantity)

	if mode != types.RemoteAuth {
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}

	remote, err := c.api.AddItem(ctx, productID, quantity)
	if err != nil {
		c.log.Warn("remote add failed, keeping local cart", "product_id", productID, "error", err)
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}
	if c.store.ConfirmSetCart(rev, c.carryDisplayFields(remote)) {
		c.Reconcile(ctx)
	}
	return Result{Mode: mode, State: c.store.State()}, nil
}

// RemoveItem deletes the addressed line and gives its quantity back to
// the ledger.
func (c *Coordinator) RemoveItem(ctx context.Context, key types.ItemKey) (Result, error) {
	item, ok := c.store.Find(key)
	if !ok {
		return Result{}, fmt.Errorf("remove cart line: %w", apperr.ErrNotFound)
	}
	mode := c.session.Resolve()

	state, rev := c.store.Dispatch(cartstore.RemoveItem(key))
	c.ledger.Increment(item.ProductID, item.Quantity)

	// A line the backend never confirmed has no remote id to delete.
	if mode != types.RemoteAuth || item.RemoteLineID == "" {
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}

	remote, err := c.api.RemoveItem(ctx, item.RemoteLineID)
	if errors.Is(err, apperr.ErrNoCartPayload) {
		// Success without a cart body is inconclusive, not "cart is
		// empty"; the local projection stands.
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}
	if err != nil {
		c.log.Warn("remote remove failed, keeping local cart", "line_id", item.RemoteLineID, "error", err)
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}
	if c.store.ConfirmSetCart(rev, c.carryDisplayFields(remote)) {
		c.Reconcile(ctx)
	}
	return Result{Mode: mode, State: c.store.State()}, nil
}

// SetQuantity sets the addressed line to quantity. Quantities below 1 are
// rejected; dropping a line is RemoveItem's job. The ledger moves by the
// delta against the current quantity and is not reverted on remote
// failure, since it reflects the user's intent either way.
func (c *Coordinator) SetQuantity(ctx context.Context, key types.ItemKey, quantity int) (Result, error) {
	if quantity < 1 {
		return Result{}, fmt.Errorf("set quantity: %w", apperr.ErrInvalidQuantity)
	}
	item, ok := c.store.Find(key)
	if !ok {
		return Result{}, fmt.Errorf("set quantity: %w", apperr.ErrNotFound)
	}
	mode := c.session.Resolve()

	delta := quantity - item.Quantity
	if delta > 0 {
		c.ledger.Decrement(item.ProductID, delta)
	} else if delta < 0 {
		c.ledger.Increment(item.ProductID, -delta)
	}
	state, rev := c.store.Dispatch(cartstore.SetQuantity(key, quantity))

	if mode != types.RemoteAuth || item.RemoteLineID == "" {
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}

	remote, err := c.api.UpdateQuantity(ctx, item.RemoteLineID, quantity)
	if err != nil {
		c.log.Warn("remote quantity update failed, keeping local cart", "line_id", item.RemoteLineID, "error", err)
		return Result{Mode: mode, HandledLocally: true, State: state}, nil
	}
	c.store.ConfirmSetCart(rev, c.carryDisplayFields(remote))
	return Result{Mode: mode, State: c.store.State()}, nil
}

// Reconcile replaces the cart with the backend's current snapshot. It is
// the single place allowed to clear the cart off an authoritative empty
// or payload-less success response; transport failures keep local state.
func (c *Coordinator) Reconcile(ctx context.Context) Result {
	mode := c.session.Resolve()
	if mode != types.RemoteAuth {
		return Result{Mode: mode, HandledLocally: true, State: c.store.State()}
	}

	rev := c.store.Revision()
	remote, err := c.api.FetchCart(ctx)
	if errors.Is(err, apperr.ErrNoCartPayload) {
		c.store.ConfirmSetCart(rev, nil)
		return Result{Mode: mode, State: c.store.State()}
	}
	if err != nil {
		c.log.Warn("cart fetch failed, keeping local cart", "error", err)
		return Result{Mode: mode, HandledLocally: true, State: c.store.State()}
	}
	c.store.ConfirmSetCart(rev, c.carryDisplayFields(remote))
	return Result{Mode: mode, State: c.store.State()}
}

// Clear empties the cart. The local clear always applies, whatever the
// backend says: the user's intent should not be contradicted by a stale
// remote cart on the next read.
func (c *Coordinator) Clear(ctx context.Context) Result {
	mode := c.session.Resolve()
	if mode == types.RemoteAuth {
		if err := c.api.ClearCart(ctx); err != nil {
			c.log.Warn("remote cart clear failed, clearing locally anyway", "error", err)
		}
	}
	state, _ := c.store.Dispatch(cartstore.Clear())
	return Result{Mode: mode, State: state}
}

// PlaceOrder posts checkout to the backend and clears the cart on
// success. Checkout needs the backend, so local sessions are refused
// rather than degraded.
func (c *Coordinator) PlaceOrder(ctx context.Context) (Result, error) {
	mode := c.session.Resolve()
	if mode != types.RemoteAuth {
		return Result{}, fmt.Errorf("place order: %w", apperr.ErrRemoteUnavailable)
	}
	if err := c.api.PlaceOrder(ctx); err != nil {
		return Result{}, fmt.Errorf("place order: %w", err)
	}
	state, _ := c.store.Dispatch(cartstore.Clear())
	return Result{Mode: mode, State: state}, nil
}

// Logout drops the credential and every trace of the session's cart.
func (c *Coordinator) Logout(ctx context.Context) {
	c.session.Clear()
	c.store.Dispatch(cartstore.Clear())
	if err := c.cache.Clear(ctx); err != nil {
		c.log.Warn("cart cache clear failed", "error", err)
	}
}

// newItem builds a cart line from the catalog entry when one exists.
func (c *Coordinator) newItem(productID string, quantity int) types.CartItem {
	item := types.CartItem{ProductID: productID, Quantity: quantity}
	if p, ok := c.catalog[productID]; ok {
		item.Name = p.Name
		item.UnitPrice = p.Price
		item.Image = p.Image
	}
	return item
}

// carryDisplayFields fills name, price, and image on remote lines that
// omit them, preferring what the store already shows, then the catalog.
func (c *Coordinator) carryDisplayFields(remote []types.CartItem) []types.CartItem {
	current := c.store.State().Items
	byProduct := make(map[string]types.CartItem, len(current))
	for _, it := range current {
		byProduct[it.ProductID] = it
	}
	out := make([]types.CartItem, len(remote))
	for i, it := range remote {
		if it.Name == "" || it.Image == "" || it.UnitPrice == 0 {
			if prev, ok := byProduct[it.ProductID]; ok {
				if it.Name == "" {
					it.Name = prev.Name
				}
				if it.Image == "" {
					it.Image = prev.Image
				}
				if it.UnitPrice == 0 {
					it.UnitPrice = prev.UnitPrice
				}
			} else if p, ok := c.catalog[it.ProductID]; ok {
				if it.Name == "" {
					it.Name = p.Name
				}
				if it.Image == "" {
					it.Image = p.Image
				}
				if it.UnitPrice == 0 {
					it.UnitPrice = p.Price
				}
			}
		}
		out[i] = it
	}
	return out
}
