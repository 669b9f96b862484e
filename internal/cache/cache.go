package cache

import (
	"context"

	"github.com/yungbote/petshop-storefront/internal/types"
)

// Store is the persistent local cart cache: the fallback authority that
// survives restarts. Implementations overwrite the whole line array on
// every save; there are no partial writes. Load returns an empty slice
// when nothing was cached.
type Store interface {
	Load(ctx context.Context) ([]types.CartItem, error)
	Save(ctx context.Context, items []types.CartItem) error
	Clear(ctx context.Context) error
}
