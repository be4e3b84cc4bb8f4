package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddonGroup is a named set of optional extras offered with a product.
type AddonGroup struct {
	ID          uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string      `gorm:"column:name;not null"`
	Description *string     `gorm:"column:description"`
	Items       []AddonItem `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// AddonItem is one concrete extra within a group, separately priced and
// independently markable unavailable.
type AddonItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID     uuid.UUID       `gorm:"column:group_id;type:uuid;not null"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	IsAvailable bool            `gorm:"column:is_available;not null;default:true"`
	Position    int             `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
