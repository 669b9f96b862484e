package cartstore

import (
	"sync"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// ActionKind enumerates the reducer transitions.
type ActionKind int

const (
	ActionSetCart ActionKind = iota
	ActionAddItem
	ActionRemoveItem
	ActionSetQuantity
	ActionClear
)

// Action is one reducer input. Items is used by SetCart, Item by AddItem,
// Key and Quantity by the targeted transitions.
type Action struct {
	Kind     ActionKind
	Items    []types.CartItem
	Item     types.CartItem
	Key      types.ItemKey
	Quantity int
}

func SetCart(items []types.CartItem) Action {
	return Action{Kind: ActionSetCart, Items: items}
}

func AddItem(item types.CartItem) Action {
	return Action{Kind: ActionAddItem, Item: item}
}

func RemoveItem(key types.ItemKey) Action {
	return Action{Kind: ActionRemoveItem, Key: key}
}

func SetQuantity(key types.ItemKey, quantity int) Action {
	return Action{Kind: ActionSetQuantity, Key: key, Quantity: quantity}
}

func Clear() Action {
	return Action{Kind: ActionClear}
}

// reduce applies one action to a state and returns the next state. It is
// synchronous and free of side effects; persistence hangs off the store's
// change listeners, never off the reducer.
func reduce(state types.CartState, a Action) types.CartState {
	switch a.Kind {
	case ActionSetCart:
		return types.CartState{Items: cloneItems(a.Items)}
	case ActionAddItem:
		return reduceAdd(state, a.Item)
	case ActionRemoveItem:
		return reduceRemove(state, a.Key)
	case ActionSetQuantity:
		return reduceSetQuantity(state, a.Key, a.Quantity)
	case ActionClear:
		return types.CartState{Items: []types.CartItem{}}
	default:
		return state
	}
}

// reduceAdd merges by product id: an existing line gains the incoming
// quantity in place, a new line is appended. Insertion order is stable.
func reduceAdd(state types.CartState, item types.CartItem) types.CartState {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	next := cloneItems(state.Items)
	for i := range next {
		if next[i].ProductID == item.ProductID {
			next[i].Quantity += item.Quantity
			if item.RemoteLineID != "" {
				next[i].RemoteLineID = item.RemoteLineID
			}
			return types.CartState{Items: next}
		}
	}
	return types.CartState{Items: append(next, item)}
}

func reduceRemove(state types.CartState, key types.ItemKey) types.CartState {
	next := cloneItems(state.Items)
	for i := range next {
		if key.Matches(next[i]) {
			return types.CartState{Items: append(next[:i], next[i+1:]...)}
		}
	}
	return types.CartState{Items: next}
}

// reduceSetQuantity sets the quantity on the matching line. Quantities
// below 1 are ignored here: the reducer never stores a zero line, and it
// never removes one either; removal is a deliberate caller action.
func reduceSetQuantity(state types.CartState, key types.ItemKey, quantity int) types.CartState {
	if quantity < 1 {
		return state
	}
	next := cloneItems(state.Items)
	for i := range next {
		if key.Matches(next[i]) {
			next[i].Quantity = quantity
			break
		}
	}
	return types.CartState{Items: next}
}

func cloneItems(items []types.CartItem) []types.CartItem {
	out := make([]types.CartItem, len(items))
	copy(out, items)
	return out
}

// Store is the single authoritative in-memory cart for the session. It is
// injected explicitly into whatever needs it; there is no package-level
// instance. Every dispatch bumps a revision counter that the sync layer
// uses to discard stale remote confirmations.
type Store struct {
	mu        sync.RWMutex
	state     types.CartState
	revision  uint64
	listeners []func(types.CartState)
	log       *logger.Logger
}

func New(log *logger.Logger) *Store {
	return &Store{
		state: types.CartState{Items: []types.CartItem{}},
		log:   log.With("component", "CartStore"),
	}
}

// OnChange registers a listener invoked after every state transition with
// the new state. The persistent cache write-through registers here.
func (s *Store) OnChange(fn func(types.CartState)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Dispatch applies the action and notifies listeners. It returns the new
// state and its revision.
func (s *Store) Dispatch(a Action) (types.CartState, uint64) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	s.revision++
	state, rev := s.state, s.revision
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return state, rev
}

// ConfirmSetCart replaces the cart with an authoritative remote snapshot,
// but only when no local mutation has happened since expectedRevision was
// observed. A stale confirmation is dropped and false is returned.
func (s *Store) ConfirmSetCart(expectedRevision uint64, items []types.CartItem) bool {
	s.mu.Lock()
	if s.revision != expectedRevision {
		s.mu.Unlock()
		s.log.Debug("dropping stale cart confirmation",
			"expected_revision", expectedRevision, "revision", s.revision)
		return false
	}
	s.state = reduce(s.state, SetCart(items))
	s.revision++
	state := s.state
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return true
}

func (s *Store) State() types.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.CartState{Items: cloneItems(s.state.Items)}
}

func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Find returns the line addressed by key and whether it exists.
func (s *Store) Find(key types.ItemKey) (types.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.state.Items {
		if key.Matches(it) {
			return it, true
		}
	}
	return types.CartItem{}, false
}

// ItemCount is the total quantity across all lines.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, it := range s.state.Items {
		total += it.Quantity
	}
	return total
}

// Subtotal is the price-weighted sum across all lines.
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, it := range s.state.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}
