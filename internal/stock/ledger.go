package stock

import (
	"sync"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// Ledger is the advisory client-side stock table. It is seeded from the
// catalog at load time, mutated only by cart operations, and never
// persisted; checkout-time stock belongs to the backend. Decrements clamp
// at zero and increments clamp at the catalog seed, so the visible count
// never goes negative and never exceeds what the catalog started with.
type Ledger struct {
	mu        sync.RWMutex
	available map[string]int
	seed      map[string]int
	log       *logger.Logger
}

func NewLedger(products []types.Product, log *logger.Logger) *Ledger {
	available := make(map[string]int, len(products))
	seed := make(map[string]int, len(products))
	for _, p := range products {
		qty := p.AvailableQty
		if qty < 0 {
			qty = 0
		}
		available[p.ID] = qty
		seed[p.ID] = qty
	}
	return &Ledger{
		available: available,
		seed:      seed,
		log:       log.With("component", "StockLedger"),
	}
}

// Available answers whether amount units of the product can still be
// added to the cart, advisory only.
func (l *Ledger) Available(productID string, amount int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return amount <= l.available[productID]
}

// Remaining returns the current advisory count for the product.
func (l *Ledger) Remaining(productID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.available[productID]
}

func (l *Ledger) Decrement(productID string, amount int) {
	if amount <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.available[productID] - amount
	if next < 0 {
		l.log.Debug("stock decrement clamped at zero", "product_id", productID)
		next = 0
	}
	l.available[productID] = next
}

func (l *Ledger) Increment(productID string, amount int) {
	if amount <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.available[productID] + amount
	if seeded, ok := l.seed[productID]; ok && next > seeded {
		next = seeded
	}
	l.available[productID] = next
}

// Records snapshots the ledger for display.
func (l *Ledger) Records() []types.StockRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.StockRecord, 0, len(l.available))
	for id, qty := range l.available {
		out = append(out, types.StockRecord{ProductID: id, AvailableQty: qty})
	}
	return out
}
