package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is an optional sales context (fair, concert, pop-up) attached to a
// register session. The composition core is agnostic to it.
type Event struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Location  *string   `gorm:"column:location"`
	StartTime time.Time `gorm:"column:start_time;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
