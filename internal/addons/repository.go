package addon

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together addon group and item persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateGroup persists a new addon group.
func (r *Repository) CreateGroup(ctx context.Context, group *models.AddonGroup) (*models.AddonGroup, error) {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroup saves the group fields without touching its items.
func (r *Repository) UpdateGroup(ctx context.Context, group *models.AddonGroup) (*models.AddonGroup, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes the group; items cascade.
func (r *Repository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AddonGroup{}, "id = ?", id).Error
}

// FindGroupByID loads the group with its items in position order.
func (r *Repository) FindGroupByID(ctx context.Context, id uuid.UUID) (*models.AddonGroup, error) {
	var group models.AddonGroup
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListGroups returns all groups with their items in position order.
func (r *Repository) ListGroups(ctx context.Context) ([]models.AddonGroup, error) {
	var groups []models.AddonGroup
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateItem persists a new item within a group.
func (r *Repository) CreateItem(ctx context.Context, item *models.AddonItem) (*models.AddonItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem saves the item fields.
func (r *Repository) UpdateItem(ctx context.Context, item *models.AddonItem) (*models.AddonItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AddonItem{}, "id = ?", id).Error
}

// FindItemByID loads one item.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.AddonItem, error) {
	var item models.AddonItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CountBindings reports how many product configs reference the group.
func (r *Repository) CountBindings(ctx context.Context, groupID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductAddonConfig{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
