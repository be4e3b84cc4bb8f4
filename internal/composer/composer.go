package composer

import (
	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/internal/cart"
	product "github.com/petrocini/fast-sale-backend/internal/products"
	"github.com/shopspring/decimal"
)

// Composition drives the customize-before-adding interaction for a single
// product instance. Quantity and selections are transient: they reset whenever
// a new product is staged, confirmed or not, so stale selections never leak
// across products.
type Composition struct {
	product    *product.ProductDTO
	quantity   int
	selections map[uuid.UUID][]uuid.UUID
}

// New returns an empty composition with no staged product.
func New() *Composition {
	c := &Composition{}
	c.reset()
	return c
}

func (c *Composition) reset() {
	c.quantity = 1
	c.selections = map[uuid.UUID][]uuid.UUID{}
}

// Begin stages a product and wipes any previous transient state.
func (c *Composition) Begin(p *product.ProductDTO) {
	c.product = p
	c.reset()
}

// Product returns the staged product, or nil.
func (c *Composition) Product() *product.ProductDTO {
	return c.product
}

// Quantity returns the current unit count (always >= 1).
func (c *Composition) Quantity() int {
	return c.quantity
}

// IncrementQuantity raises the unit count by one.
func (c *Composition) IncrementQuantity() {
	c.quantity++
}

// DecrementQuantity lowers the unit count by one with a floor of 1.
func (c *Composition) DecrementQuantity() {
	if c.quantity > 1 {
		c.quantity--
	}
}

// Toggle flips the selection state of an addon item within its group. Removal
// is always allowed. Adding respects the group constraint: single-choice groups
// replace the current pick, multi-choice groups at their cap silently ignore the
// toggle, and unavailable items can never be toggled on. It reports whether the
// selection changed.
func (c *Composition) Toggle(groupID, itemID uuid.UUID) bool {
	if c.product == nil {
		return false
	}
	config := c.product.Config(groupID)
	if config == nil {
		return false
	}
	item := config.Item(itemID)
	if item == nil {
		return false
	}

	selected := c.selections[groupID]
	if index := indexOf(selected, itemID); index >= 0 {
		c.selections[groupID] = append(selected[:index], selected[index+1:]...)
		return true
	}

	if !item.IsAvailable {
		return false
	}
	if len(selected) >= config.MaxSelection && config.MaxSelection > 1 {
		// soft cap: at the limit further toggles do nothing rather than evicting
		return false
	}
	if config.MaxSelection == 1 {
		c.selections[groupID] = []uuid.UUID{itemID}
		return true
	}
	c.selections[groupID] = append(selected, itemID)
	return true
}

// Selected returns the chosen item ids for a group in insertion order.
func (c *Composition) Selected(groupID uuid.UUID) []uuid.UUID {
	selected := c.selections[groupID]
	out := make([]uuid.UUID, len(selected))
	copy(out, selected)
	return out
}

// SelectedAddons resolves the current selections into snapshots, walking the
// product's configs in display order and each group's picks in insertion order.
func (c *Composition) SelectedAddons() []cart.SelectedAddon {
	if c.product == nil {
		return nil
	}
	var addons []cart.SelectedAddon
	for i := range c.product.AddonConfigs {
		config := &c.product.AddonConfigs[i]
		for _, itemID := range c.selections[config.GroupID] {
			if item := config.Item(itemID); item != nil {
				addons = append(addons, cart.SelectedAddon{
					ID:    item.ID,
					Name:  item.Name,
					Price: item.Price,
				})
			}
		}
	}
	return addons
}

// UnitPrice is the product price plus the sum of selected addon prices.
func (c *Composition) UnitPrice() decimal.Decimal {
	if c.product == nil {
		return decimal.Zero
	}
	price := c.product.Price
	for _, addon := range c.SelectedAddons() {
		price = price.Add(addon.Price)
	}
	return price
}

// Total is the unit price multiplied by the quantity.
func (c *Composition) Total() decimal.Decimal {
	return c.UnitPrice().Mul(decimal.NewFromInt(int64(c.quantity)))
}

// IsValid reports whether every group's minimum selection is satisfied. A
// product with no addon configs is trivially valid. Confirmation must be gated
// on this.
func (c *Composition) IsValid() bool {
	if c.product == nil {
		return false
	}
	for _, config := range c.product.AddonConfigs {
		if len(c.selections[config.GroupID]) < config.MinSelection {
			return false
		}
	}
	return true
}

// Confirm materializes the staged composition into the shape the basket
// consumes and resets the transient state for the next item. It refuses (ok
// false) while IsValid is false.
func (c *Composition) Confirm() (cart.ProductSnapshot, int, []cart.SelectedAddon, bool) {
	if !c.IsValid() {
		return cart.ProductSnapshot{}, 0, nil, false
	}

	snapshot := cart.ProductSnapshot{
		ID:    c.product.ID,
		Name:  c.product.Name,
		Price: c.product.Price,
	}
	quantity := c.quantity
	addons := c.SelectedAddons()

	c.reset()
	return snapshot, quantity, addons, true
}

func indexOf(ids []uuid.UUID, target uuid.UUID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}
