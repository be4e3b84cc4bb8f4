package product

import (
	"sort"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ProductDTO is the read model handed to the sale screen and the composition
// core. Addon configs arrive ordered by display order, items by position.
type ProductDTO struct {
	ID           uuid.UUID        `json:"id"`
	CategoryID   uuid.UUID        `json:"category_id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	StockQty     int              `json:"stock_qty"`
	IsActive     bool             `json:"is_active"`
	AddonConfigs []AddonConfigDTO `json:"addon_configs,omitempty"`
}

// AddonConfigDTO binds one addon group to the product with its selection constraint.
type AddonConfigDTO struct {
	ID           uuid.UUID     `json:"id"`
	GroupID      uuid.UUID     `json:"group_id"`
	MinSelection int           `json:"min_selection"`
	MaxSelection int           `json:"max_selection"`
	DisplayOrder int           `json:"display_order"`
	Group        AddonGroupDTO `json:"group"`
}

// AddonGroupDTO carries the group and its selectable items.
type AddonGroupDTO struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Items []AddonItemDTO `json:"items"`
}

// AddonItemDTO is one selectable extra.
type AddonItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
}

// NewProductDTO maps the persisted product into the read model.
func NewProductDTO(model *models.Product) *ProductDTO {
	if model == nil {
		return nil
	}

	dto := &ProductDTO{
		ID:          model.ID,
		CategoryID:  model.CategoryID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		StockQty:    model.StockQty,
		IsActive:    model.IsActive,
	}

	configs := make([]AddonConfigDTO, 0, len(model.AddonConfigs))
	for _, config := range model.AddonConfigs {
		configs = append(configs, newAddonConfigDTO(config))
	}
	sort.SliceStable(configs, func(i, j int) bool {
		return configs[i].DisplayOrder < configs[j].DisplayOrder
	})
	dto.AddonConfigs = configs
	return dto
}

func newAddonConfigDTO(model models.ProductAddonConfig) AddonConfigDTO {
	dto := AddonConfigDTO{
		ID:           model.ID,
		GroupID:      model.GroupID,
		MinSelection: model.MinSelection,
		MaxSelection: model.MaxSelection,
		DisplayOrder: model.DisplayOrder,
	}
	if model.Group != nil {
		dto.Group = AddonGroupDTO{
			ID:    model.Group.ID,
			Name:  model.Group.Name,
			Items: newAddonItemDTOs(model.Group.Items),
		}
	}
	return dto
}

func newAddonItemDTOs(items []models.AddonItem) []AddonItemDTO {
	dtos := make([]AddonItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, AddonItemDTO{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			IsAvailable: item.IsAvailable,
		})
	}
	sortByPosition(items, dtos)
	return dtos
}

func sortByPosition(items []models.AddonItem, dtos []AddonItemDTO) {
	order := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		order[item.ID] = item.Position
	}
	sort.SliceStable(dtos, func(i, j int) bool {
		return order[dtos[i].ID] < order[dtos[j].ID]
	})
}

// Config returns the addon config bound to the given group, or nil.
func (p *ProductDTO) Config(groupID uuid.UUID) *AddonConfigDTO {
	for i := range p.AddonConfigs {
		if p.AddonConfigs[i].GroupID == groupID {
			return &p.AddonConfigs[i]
		}
	}
	return nil
}

// Item returns the addon item with the given id within the config's group, or nil.
func (c *AddonConfigDTO) Item(itemID uuid.UUID) *AddonItemDTO {
	for i := range c.Group.Items {
		if c.Group.Items[i].ID == itemID {
			return &c.Group.Items[i]
		}
	}
	return nil
}
