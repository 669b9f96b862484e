package types

// CartItem is one line in the cart. Identity for merge purposes is the
// catalog ProductID; RemoteLineID is assigned by the backend once the line
// exists there and stays empty for lines that only exist locally.
type CartItem struct {
	ProductID    string  `json:"product_id"`
	RemoteLineID string  `json:"remote_line_id,omitempty"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unit_price"`
	Image        string  `json:"image"`
	Quantity     int     `json:"quantity"`
}

// CartState is the full in-memory cart. At most one item per ProductID,
// quantities always >= 1; insertion order is preserved.
type CartState struct {
	Items []CartItem `json:"items"`
}

// ItemKeyKind tags how an ItemKey addresses a cart line.
type ItemKeyKind int

const (
	// ByCatalogID addresses a line by its product catalog id.
	ByCatalogID ItemKeyKind = iota
	// ByRemoteLine addresses a line by the id the backend assigned to it.
	ByRemoteLine
)

// ItemKey is a tagged lookup key for a cart line. Callers pick the kind
// explicitly instead of relying on field fallback comparisons.
type ItemKey struct {
	Kind ItemKeyKind
	ID   string
}

func CatalogKey(productID string) ItemKey {
	return ItemKey{Kind: ByCatalogID, ID: productID}
}

func RemoteLineKey(lineID string) ItemKey {
	return ItemKey{Kind: ByRemoteLine, ID: lineID}
}

// Matches reports whether the key addresses the given item.
func (k ItemKey) Matches(it CartItem) bool {
	switch k.Kind {
	case ByRemoteLine:
		return it.RemoteLineID != "" && it.RemoteLineID == k.ID
	default:
		return it.ProductID == k.ID
	}
}
