package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSnapshot is the slice of catalog data a basket line keeps. It is copied
// at confirmation time so later catalog edits never mutate basket history.
type ProductSnapshot struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// SelectedAddon is the snapshot of one chosen addon item.
type SelectedAddon struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

// LineItem is a single basket row, uniquely keyed by product+addon composition.
// InternalID is generated at creation and never reused, even after removal.
type LineItem struct {
	InternalID uuid.UUID
	Product    ProductSnapshot
	Quantity   int
	Addons     []SelectedAddon
	LineTotal  decimal.Decimal
}

// UnitPrice returns the product price plus the sum of addon prices.
func (l *LineItem) UnitPrice() decimal.Decimal {
	return unitPrice(l.Product, l.Addons)
}

func unitPrice(product ProductSnapshot, addons []SelectedAddon) decimal.Decimal {
	price := product.Price
	for _, addon := range addons {
		price = price.Add(addon.Price)
	}
	return price
}

func cloneAddons(addons []SelectedAddon) []SelectedAddon {
	if len(addons) == 0 {
		return nil
	}
	cloned := make([]SelectedAddon, len(addons))
	copy(cloned, addons)
	return cloned
}
