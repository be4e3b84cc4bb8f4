package pos

import (
	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/internal/cart"
	"github.com/petrocini/fast-sale-backend/internal/composer"
	"github.com/petrocini/fast-sale-backend/pkg/money"
	"github.com/shopspring/decimal"
)

// AddonView is one selected extra on a basket line. Zero-price addons carry the
// free label here, at the display boundary, never in the stored amounts.
type AddonView struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	PriceLabel string          `json:"price_label"`
}

// LineView is one basket line as rendered on the register.
type LineView struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	TotalLabel string          `json:"total_label"`
	Addons     []AddonView     `json:"addons"`
}

// CartView is the whole basket plus its derived totals.
type CartView struct {
	Lines       []LineView      `json:"lines"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalLabel  string          `json:"total_label"`
	TotalItems  int             `json:"total_items"`
	EventID     *uuid.UUID      `json:"event_id,omitempty"`
}

// CompositionView mirrors the in-progress customization for the register UI.
type CompositionView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Addons    []AddonView     `json:"addons"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	IsValid   bool            `json:"is_valid"`
}

func newAddonViews(addons []cart.SelectedAddon) []AddonView {
	views := make([]AddonView, 0, len(addons))
	for _, addon := range addons {
		views = append(views, AddonView{
			ID:         addon.ID,
			Name:       addon.Name,
			Price:      addon.Price,
			PriceLabel: money.FormatOrFree(addon.Price),
		})
	}
	return views
}

func newLineView(line cart.LineItem) LineView {
	return LineView{
		ID:         line.InternalID,
		ProductID:  line.Product.ID,
		Name:       line.Product.Name,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice(),
		LineTotal:  line.LineTotal,
		TotalLabel: money.Format(line.LineTotal),
		Addons:     newAddonViews(line.Addons),
	}
}

func newCartView(ledger *cart.Ledger, eventID *uuid.UUID) CartView {
	items := ledger.Items()
	lines := make([]LineView, 0, len(items))
	for _, item := range items {
		lines = append(lines, newLineView(item))
	}
	total := ledger.TotalAmount()
	return CartView{
		Lines:       lines,
		TotalAmount: total,
		TotalLabel:  money.Format(total),
		TotalItems:  ledger.TotalItems(),
		EventID:     eventID,
	}
}

func newCompositionView(c *composer.Composition) CompositionView {
	p := c.Product()
	if p == nil {
		return CompositionView{}
	}
	return CompositionView{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  c.Quantity(),
		Addons:    newAddonViews(c.SelectedAddons()),
		UnitPrice: c.UnitPrice(),
		Total:     c.Total(),
		IsValid:   c.IsValid(),
	}
}
