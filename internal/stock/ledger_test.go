package stock

import (
	"testing"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

func newTestLedger() *Ledger {
	return NewLedger([]types.Product{
		{ID: "food", AvailableQty: 10},
		{ID: "leash", AvailableQty: 2},
		{ID: "gone", AvailableQty: 0},
	}, logger.NewNop())
}

func TestDecrementClampsAtZero(t *testing.T) {
	l := newTestLedger()
	l.Decrement("leash", 5)
	if got := l.Remaining("leash"); got != 0 {
		t.Fatalf("remaining=%d, want 0", got)
	}
	l.Decrement("leash", 1)
	if got := l.Remaining("leash"); got != 0 {
		t.Fatalf("remaining=%d after second decrement, want 0", got)
	}
}

func TestIncrementClampsAtCatalogSeed(t *testing.T) {
	l := newTestLedger()
	l.Decrement("food", 4)
	l.Increment("food", 100)
	if got := l.Remaining("food"); got != 10 {
		t.Fatalf("remaining=%d, want the catalog seed 10", got)
	}
}

func TestAvailable(t *testing.T) {
	cases := []struct {
		name      string
		productID string
		amount    int
		want      bool
	}{
		{name: "within stock", productID: "food", amount: 10, want: true},
		{name: "beyond stock", productID: "food", amount: 11, want: false},
		{name: "exhausted product", productID: "gone", amount: 1, want: false},
		{name: "unknown product", productID: "nope", amount: 1, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger()
			if got := l.Available(tc.productID, tc.amount); got != tc.want {
				t.Fatalf("Available(%s,%d)=%v, want %v", tc.productID, tc.amount, got, tc.want)
			}
		})
	}
}

func TestDecrementThenIncrementRoundTrip(t *testing.T) {
	l := newTestLedger()
	l.Decrement("food", 3)
	if got := l.Remaining("food"); got != 7 {
		t.Fatalf("remaining=%d, want 7", got)
	}
	l.Increment("food", 3)
	if got := l.Remaining("food"); got != 10 {
		t.Fatalf("remaining=%d, want 10", got)
	}
}

func TestIgnoresNonPositiveAmounts(t *testing.T) {
	l := newTestLedger()
	l.Decrement("food", 0)
	l.Decrement("food", -2)
	l.Increment("food", -2)
	if got := l.Remaining("food"); got != 10 {
		t.Fatalf("remaining=%d, want 10", got)
	}
}
