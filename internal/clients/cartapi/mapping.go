package cartapi

import (
	"encoding/json"

	"github.com/yungbote/petshop-storefront/internal/types"
)

// flexID tolerates the backend sending ids as numbers or strings.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// wireProduct carries both the English and the legacy Spanish field names
// the backend has shipped over time.
type wireProduct struct {
	ID     flexID   `json:"id"`
	Name   string   `json:"name"`
	Nombre string   `json:"nombre"`
	Price  *float64 `json:"price"`
	Precio *float64 `json:"precio"`
	Image  string   `json:"image"`
	Imagen string   `json:"imagen"`
}

type wireLine struct {
	ID       flexID      `json:"id"`
	Product  wireProduct `json:"product"`
	Quantity int         `json:"quantity"`
	Price    *float64    `json:"price"`
}

// decodeCart maps a response body to cart lines. ok is false when the
// body has no cart_items field at all; an explicit empty array is a valid
// (empty) cart.
func decodeCart(raw []byte) ([]types.CartItem, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false
	}
	linesRaw, present := probe["cart_items"]
	if !present {
		return nil, false
	}
	var lines []wireLine
	if err := json.Unmarshal(linesRaw, &lines); err != nil {
		return nil, false
	}

	items := make([]types.CartItem, 0, len(lines))
	for _, l := range lines {
		qty := l.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, types.CartItem{
			ProductID:    string(l.Product.ID),
			RemoteLineID: string(l.ID),
			Name:         firstNonEmpty(l.Product.Name, l.Product.Nombre),
			UnitPrice:    firstPrice(l.Product.Price, l.Product.Precio, l.Price),
			Image:        firstNonEmpty(l.Product.Image, l.Product.Imagen),
			Quantity:     qty,
		})
	}
	return items, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPrice(values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}
