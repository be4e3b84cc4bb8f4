package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing. The composition core only reads it.
type Product struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID   uuid.UUID            `gorm:"column:category_id;type:uuid;not null"`
	Name         string               `gorm:"column:name;not null"`
	Description  *string              `gorm:"column:description"`
	Price        decimal.Decimal      `gorm:"column:price;type:numeric(12,2);not null"`
	StockQty     int                  `gorm:"column:stock_qty;not null;default:0"`
	IsActive     bool                 `gorm:"column:is_active;not null;default:true"`
	Category     *Category            `gorm:"foreignKey:CategoryID"`
	AddonConfigs []ProductAddonConfig `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductAddonConfig binds a product to an addon group with the selection
// constraint governing how many items must/may be chosen per unit.
type ProductAddonConfig struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID   `gorm:"column:product_id;type:uuid;not null"`
	GroupID      uuid.UUID   `gorm:"column:group_id;type:uuid;not null"`
	MinSelection int         `gorm:"column:min_selection;not null;default:0"`
	MaxSelection int         `gorm:"column:max_selection;not null;default:1"`
	DisplayOrder int         `gorm:"column:display_order;not null;default:0"`
	Group        *AddonGroup `gorm:"foreignKey:GroupID"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
