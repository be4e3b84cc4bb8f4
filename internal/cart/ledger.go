package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line mutation outcomes reported by Add.
const (
	OutcomeCreated = "created"
	OutcomeMerged  = "merged"
)

// Ledger is the authoritative in-memory basket for one register session. It is
// owned by a single writer; callers needing cross-goroutine access must guard it
// themselves. Every operation is a total function: invalid inputs are no-ops,
// never errors.
type Ledger struct {
	lines []*LineItem
	byKey map[string]*LineItem
}

// NewLedger builds an empty basket.
func NewLedger() *Ledger {
	return &Ledger{byKey: map[string]*LineItem{}}
}

// Add merges the composition into the basket. A line with the same composition
// key absorbs the quantity; otherwise a new line is appended with a fresh
// internal id. It returns the touched line and the mutation outcome.
func (l *Ledger) Add(product ProductSnapshot, quantity int, addons []SelectedAddon) (LineItem, string) {
	if quantity < 1 {
		return LineItem{}, ""
	}

	addons = cloneAddons(addons)
	unit := unitPrice(product, addons)
	key := CompositionKey(product.ID, addons)

	if existing, ok := l.byKey[key]; ok {
		existing.Quantity += quantity
		existing.LineTotal = existing.LineTotal.Add(unit.Mul(decimal.NewFromInt(int64(quantity))))
		return *existing, OutcomeMerged
	}

	line := &LineItem{
		InternalID: uuid.New(),
		Product:    product,
		Quantity:   quantity,
		Addons:     addons,
		LineTotal:  unit.Mul(decimal.NewFromInt(int64(quantity))),
	}
	l.lines = append(l.lines, line)
	l.byKey[key] = line
	return *line, OutcomeCreated
}

// Remove deletes the line with the given internal id; absent ids are a no-op.
func (l *Ledger) Remove(internalID uuid.UUID) {
	for i, line := range l.lines {
		if line.InternalID != internalID {
			continue
		}
		delete(l.byKey, CompositionKey(line.Product.ID, line.Addons))
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
		return
	}
}

// AdjustQuantity applies the delta to the target line. A result below 1 leaves
// the line untouched; removal is always explicit. On success the line total is
// fully recomputed from quantity times unit price, never patched incrementally.
func (l *Ledger) AdjustQuantity(internalID uuid.UUID, delta int) {
	for _, line := range l.lines {
		if line.InternalID != internalID {
			continue
		}
		newQty := line.Quantity + delta
		if newQty < 1 {
			return
		}
		line.Quantity = newQty
		line.LineTotal = line.UnitPrice().Mul(decimal.NewFromInt(int64(newQty)))
		return
	}
}

// Clear empties the basket unconditionally.
func (l *Ledger) Clear() {
	l.lines = nil
	l.byKey = map[string]*LineItem{}
}

// TotalAmount derives the basket total from the current line totals.
func (l *Ledger) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(line.LineTotal)
	}
	return total
}

// TotalItems derives the number of units across all lines.
func (l *Ledger) TotalItems() int {
	count := 0
	for _, line := range l.lines {
		count += line.Quantity
	}
	return count
}

// Items returns a read-only snapshot of the basket in insertion order.
func (l *Ledger) Items() []LineItem {
	items := make([]LineItem, 0, len(l.lines))
	for _, line := range l.lines {
		item := *line
		item.Addons = cloneAddons(line.Addons)
		items = append(items, item)
	}
	return items
}

// Len reports the number of distinct lines.
func (l *Ledger) Len() int {
	return len(l.lines)
}
