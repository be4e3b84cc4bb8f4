package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service manages the catalog categories shown on the sale screen.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error)
}

// CategoryDTO is the category read model.
type CategoryDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Icon     *string   `json:"icon,omitempty"`
	IsActive bool      `json:"is_active"`
}

// CreateCategoryInput holds the payload to create a category.
type CreateCategoryInput struct {
	Name     string
	Icon     *string
	IsActive bool
}

// UpdateCategoryInput holds optional mutation values.
type UpdateCategoryInput struct {
	Name     *string
	Icon     *string
	IsActive *bool
}

type service struct {
	repo *Repository
}

// NewService constructs a category service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	record := &models.Category{Name: name, Icon: input.Icon, IsActive: input.IsActive}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist category")
	}
	return newCategoryDTO(created), nil
}

func (s *service) UpdateCategory(ctx context.Context, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	record, err := s.load(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
		}
		record.Name = name
	}
	if input.Icon != nil {
		record.Icon = input.Icon
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist category")
	}
	return newCategoryDTO(updated), nil
}

// DeleteCategory refuses while products still reference the category.
func (s *service) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.load(ctx, categoryID); err != nil {
		return err
	}
	count, err := s.repo.CountProducts(ctx, categoryID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "category still has products")
	}
	if err := s.repo.Delete(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) GetCategory(ctx context.Context, categoryID uuid.UUID) (*CategoryDTO, error) {
	record, err := s.load(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return newCategoryDTO(record), nil
}

func (s *service) ListCategories(ctx context.Context, activeOnly bool) ([]CategoryDTO, error) {
	records, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	dtos := make([]CategoryDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *newCategoryDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) load(ctx context.Context, categoryID uuid.UUID) (*models.Category, error) {
	record, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return record, nil
}

func newCategoryDTO(model *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:       model.ID,
		Name:     model.Name,
		Icon:     model.Icon,
		IsActive: model.IsActive,
	}
}
