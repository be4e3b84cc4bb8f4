package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	"github.com/petrocini/fast-sale-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wires together product persistence helpers.
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

// Create persists a new product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Update saves the product fields.
func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product; addon configs cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its addon configs, groups, and items in
// display order. This is the shape the composition screen consumes.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("AddonConfigs", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("AddonConfigs.Group").
		Preload("AddonConfigs.Group.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products, optionally restricted to a category and active-only.
func (r *Repository) List(ctx context.Context, categoryID *uuid.UUID, activeOnly bool, params pagination.Params) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("AddonConfigs", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("AddonConfigs.Group").
		Preload("AddonConfigs.Group.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Limit(pagination.NormalizeLimit(params.Limit)).
		Offset(pagination.NormalizeOffset(params.Offset))

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceAddonConfigs swaps the product's addon bindings atomically with the
// caller's transaction.
func (r *Repository) ReplaceAddonConfigs(ctx context.Context, productID uuid.UUID, configs []models.ProductAddonConfig) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductAddonConfig{}).Error; err != nil {
		return err
	}
	if len(configs) == 0 {
		return nil
	}
	for i := range configs {
		configs[i].ProductID = productID
	}
	return tx.Create(&configs).Error
}
