package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes catalog product management plus the detail read used by the
// register when composing an item.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	CategoryID   uuid.UUID
	Name         string
	Description  *string
	Price        decimal.Decimal
	StockQty     int
	IsActive     bool
	AddonConfigs []AddonConfigInput
}

// AddonConfigInput binds an addon group with its selection constraint.
type AddonConfigInput struct {
	GroupID      uuid.UUID
	MinSelection int
	MaxSelection int
	DisplayOrder int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	CategoryID   *uuid.UUID
	Name         *string
	Description  *string
	Price        *decimal.Decimal
	StockQty     *int
	IsActive     *bool
	AddonConfigs *[]AddonConfigInput
}

// ListProductsInput filters the catalog listing.
type ListProductsInput struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Pagination pagination.Params
}

type categoryLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

type groupLoader interface {
	FindGroupByID(ctx context.Context, id uuid.UUID) (*models.AddonGroup, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo       *Repository
	tx         txRunner
	categories categoryLoader
	groups     groupLoader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, tx txRunner, categories categoryLoader, groups groupLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category loader required")
	}
	if groups == nil {
		return nil, fmt.Errorf("addon group loader required")
	}
	return &service{repo: repo, tx: tx, categories: categories, groups: groups}, nil
}

var _ txRunner = (*db.Client)(nil)

// CreateProduct validates and persists a new listing with its addon bindings.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductFields(input.Name, input.Price, input.StockQty); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if err := s.validateAddonConfigs(ctx, input.AddonConfigs); err != nil {
		return nil, err
	}

	record := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		StockQty:    input.StockQty,
		IsActive:    input.IsActive,
	}

	var created *models.Product
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		saved, err := txRepo.Create(ctx, record)
		if err != nil {
			return err
		}
		if err := txRepo.ReplaceAddonConfigs(ctx, saved.ID, buildAddonConfigRows(input.AddonConfigs)); err != nil {
			return err
		}
		created, err = txRepo.FindDetail(ctx, saved.ID)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist product")
	}

	return NewProductDTO(created), nil
}

// UpdateProduct applies the provided mutations.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	record, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	applyUpdateToProduct(record, input)

	if err := validateProductFields(record.Name, record.Price, record.StockQty); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if err := s.ensureCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.AddonConfigs != nil {
		if err := s.validateAddonConfigs(ctx, *input.AddonConfigs); err != nil {
			return nil, err
		}
	}

	var updated *models.Product
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Update(ctx, record); err != nil {
			return err
		}
		if input.AddonConfigs != nil {
			if err := txRepo.ReplaceAddonConfigs(ctx, record.ID, buildAddonConfigRows(*input.AddonConfigs)); err != nil {
				return err
			}
		}
		var err error
		updated, err = txRepo.FindDetail(ctx, record.ID)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist product")
	}

	return NewProductDTO(updated), nil
}

// DeleteProduct removes the listing; addon bindings cascade.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

// GetProductDetail loads the full composition shape for the register.
func (s *service) GetProductDetail(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	record, err := s.repo.FindDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(record), nil
}

// ListProducts returns catalog listings for the sale screen.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]ProductDTO, error) {
	records, err := s.repo.List(ctx, input.CategoryID, input.ActiveOnly, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *NewProductDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) ensureCategory(ctx context.Context, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return nil
}

func (s *service) validateAddonConfigs(ctx context.Context, configs []AddonConfigInput) error {
	if err := ensureUniqueGroups(configs); err != nil {
		return err
	}
	for _, config := range configs {
		if err := validateSelectionBounds(config); err != nil {
			return err
		}
		if _, err := s.groups.FindGroupByID(ctx, config.GroupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "addon group does not exist")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load addon group")
		}
	}
	return nil
}

func validateProductFields(name string, price decimal.Decimal, stockQty int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if stockQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must be non-negative")
	}
	return nil
}

func validateSelectionBounds(config AddonConfigInput) error {
	if config.GroupID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "addon group id is required")
	}
	if config.MinSelection < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_selection must be non-negative")
	}
	if config.MaxSelection < config.MinSelection {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_selection must be at least min_selection")
	}
	return nil
}

func ensureUniqueGroups(configs []AddonConfigInput) error {
	seen := map[uuid.UUID]struct{}{}
	for _, config := range configs {
		if _, ok := seen[config.GroupID]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "addon group bound more than once")
		}
		seen[config.GroupID] = struct{}{}
	}
	return nil
}

func buildAddonConfigRows(configs []AddonConfigInput) []models.ProductAddonConfig {
	rows := make([]models.ProductAddonConfig, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, models.ProductAddonConfig{
			GroupID:      config.GroupID,
			MinSelection: config.MinSelection,
			MaxSelection: config.MaxSelection,
			DisplayOrder: config.DisplayOrder,
		})
	}
	return rows
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.StockQty != nil {
		product.StockQty = *input.StockQty
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}
