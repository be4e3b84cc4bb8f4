package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func burger(price string) ProductSnapshot {
	return ProductSnapshot{ID: uuid.New(), Name: "Burger", Price: dec(price)}
}

func TestAddMergesSameComposition(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	product := burger("10.00")
	addons := []SelectedAddon{{ID: uuid.New(), Name: "Cheese", Price: dec("2.00")}}

	first, outcome := ledger.Add(product, 2, addons)
	if outcome != OutcomeCreated {
		t.Fatalf("expected created, got %s", outcome)
	}

	second, outcome := ledger.Add(product, 3, addons)
	if outcome != OutcomeMerged {
		t.Fatalf("expected merged, got %s", outcome)
	}
	if second.InternalID != first.InternalID {
		t.Fatal("merge must reuse the existing line")
	}
	if ledger.Len() != 1 {
		t.Fatalf("expected a single line, got %d", ledger.Len())
	}
	if second.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", second.Quantity)
	}
	if !second.LineTotal.Equal(dec("60.00")) {
		t.Fatalf("expected line total 60.00, got %s", second.LineTotal)
	}
}

func TestAddDistinguishesAddonSets(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	product := burger("10.00")
	cheese := SelectedAddon{ID: uuid.New(), Name: "Cheese", Price: dec("2.00")}
	bacon := SelectedAddon{ID: uuid.New(), Name: "Bacon", Price: dec("3.00")}

	ledger.Add(product, 1, []SelectedAddon{cheese})
	ledger.Add(product, 1, []SelectedAddon{bacon})

	if ledger.Len() != 2 {
		t.Fatalf("different addon sets must produce distinct lines, got %d", ledger.Len())
	}
}

func TestAddonOrderDoesNotAffectIdentity(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	product := burger("10.00")
	cheese := SelectedAddon{ID: uuid.New(), Name: "Cheese", Price: dec("2.00")}
	bacon := SelectedAddon{ID: uuid.New(), Name: "Bacon", Price: dec("3.00")}

	ledger.Add(product, 1, []SelectedAddon{cheese, bacon})
	ledger.Add(product, 1, []SelectedAddon{bacon, cheese})

	if ledger.Len() != 1 {
		t.Fatalf("expected one merged line, got %d", ledger.Len())
	}
	items := ledger.Items()
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if !items[0].LineTotal.Equal(dec("30.00")) {
		t.Fatalf("expected line total 30.00, got %s", items[0].LineTotal)
	}
}

func TestAdjustQuantityFloor(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	line, _ := ledger.Add(burger("10.00"), 1, nil)

	for i := 0; i < 3; i++ {
		ledger.AdjustQuantity(line.InternalID, -1)
	}

	items := ledger.Items()
	if len(items) != 1 {
		t.Fatal("decrement below 1 must never remove the line")
	}
	if items[0].Quantity != 1 {
		t.Fatalf("expected quantity floor of 1, got %d", items[0].Quantity)
	}
	if !items[0].LineTotal.Equal(dec("10.00")) {
		t.Fatalf("expected line total 10.00, got %s", items[0].LineTotal)
	}
}

func TestAdjustQuantityRecomputesTotal(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	addons := []SelectedAddon{{ID: uuid.New(), Name: "Extra", Price: dec("1.50")}}
	line, _ := ledger.Add(burger("8.50"), 1, addons)

	ledger.AdjustQuantity(line.InternalID, 2)

	items := ledger.Items()
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if !items[0].LineTotal.Equal(dec("30.00")) {
		t.Fatalf("expected line total 30.00, got %s", items[0].LineTotal)
	}
}

func TestAdjustQuantityUnknownIDIsNoop(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.Add(burger("10.00"), 1, nil)
	ledger.AdjustQuantity(uuid.New(), 5)

	if ledger.TotalItems() != 1 {
		t.Fatalf("expected untouched basket, got %d items", ledger.TotalItems())
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	line, _ := ledger.Add(burger("10.00"), 1, nil)

	ledger.Remove(line.InternalID)
	if ledger.Len() != 0 {
		t.Fatal("expected empty basket after removal")
	}

	// absent id is a no-op, not an error
	ledger.Remove(line.InternalID)
}

func TestRemoveFreesCompositionForNewLine(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	product := burger("10.00")

	first, _ := ledger.Add(product, 1, nil)
	ledger.Remove(first.InternalID)
	second, outcome := ledger.Add(product, 1, nil)

	if outcome != OutcomeCreated {
		t.Fatalf("expected a fresh line, got %s", outcome)
	}
	if second.InternalID == first.InternalID {
		t.Fatal("internal ids must never be reused")
	}
}

func TestTotalsAreDerived(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.Add(burger("10.00"), 2, nil)
	ledger.Add(burger("5.25"), 3, []SelectedAddon{{ID: uuid.New(), Name: "Sauce", Price: dec("0.75")}})

	if !ledger.TotalAmount().Equal(dec("38.00")) {
		t.Fatalf("expected 38.00, got %s", ledger.TotalAmount())
	}
	if ledger.TotalItems() != 5 {
		t.Fatalf("expected 5 items, got %d", ledger.TotalItems())
	}

	sum := decimal.Zero
	for _, item := range ledger.Items() {
		sum = sum.Add(item.LineTotal)
	}
	if !ledger.TotalAmount().Equal(sum) {
		t.Fatal("basket total must equal the sum of line totals")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.Add(burger("10.00"), 2, nil)
	ledger.Clear()

	if ledger.Len() != 0 || ledger.TotalItems() != 0 {
		t.Fatal("expected empty basket")
	}
	if !ledger.TotalAmount().Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", ledger.TotalAmount())
	}
}

func TestAddSnapshotsAddons(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	addons := []SelectedAddon{{ID: uuid.New(), Name: "Cheese", Price: dec("2.00")}}
	ledger.Add(burger("10.00"), 1, addons)

	// mutating the caller's slice must not touch basket history
	addons[0].Price = dec("99.00")

	items := ledger.Items()
	if !items[0].Addons[0].Price.Equal(dec("2.00")) {
		t.Fatalf("addon snapshot mutated: %s", items[0].Addons[0].Price)
	}
}

func TestCompositionKeyDeduplicatesAndSorts(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	a := SelectedAddon{ID: uuid.New()}
	b := SelectedAddon{ID: uuid.New()}

	key1 := CompositionKey(productID, []SelectedAddon{a, b, a})
	key2 := CompositionKey(productID, []SelectedAddon{b, a})
	if key1 != key2 {
		t.Fatalf("keys differ: %s vs %s", key1, key2)
	}

	bare := CompositionKey(productID, nil)
	if bare != productID.String() {
		t.Fatalf("unexpected bare key: %s", bare)
	}
}
