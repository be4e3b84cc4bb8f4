package addon

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages addon groups and their items. Selection constraints live on
// the product binding, not here.
type Service interface {
	CreateGroup(ctx context.Context, input CreateGroupInput) (*GroupDTO, error)
	UpdateGroup(ctx context.Context, groupID uuid.UUID, input UpdateGroupInput) (*GroupDTO, error)
	DeleteGroup(ctx context.Context, groupID uuid.UUID) error
	GetGroup(ctx context.Context, groupID uuid.UUID) (*GroupDTO, error)
	ListGroups(ctx context.Context) ([]GroupDTO, error)

	CreateItem(ctx context.Context, groupID uuid.UUID, input ItemInput) (*GroupDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*GroupDTO, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// GroupDTO is the addon group read model with its items in position order.
type GroupDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Items       []ItemDTO `json:"items"`
}

// ItemDTO is one selectable extra.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	Position    int             `json:"position"`
}

// CreateGroupInput holds the payload to create a group.
type CreateGroupInput struct {
	Name        string
	Description *string
}

// UpdateGroupInput holds optional group mutations.
type UpdateGroupInput struct {
	Name        *string
	Description *string
}

// ItemInput holds the payload to create an item.
type ItemInput struct {
	Name        string
	Price       decimal.Decimal
	IsAvailable bool
	Position    int
}

// UpdateItemInput holds optional item mutations.
type UpdateItemInput struct {
	Name        *string
	Price       *decimal.Decimal
	IsAvailable *bool
	Position    *int
}

type service struct {
	repo *Repository
}

// NewService constructs an addon service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("addon repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateGroup(ctx context.Context, input CreateGroupInput) (*GroupDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group name is required")
	}

	record := &models.AddonGroup{Name: name, Description: input.Description}
	created, err := s.repo.CreateGroup(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist addon group")
	}
	return newGroupDTO(created), nil
}

func (s *service) UpdateGroup(ctx context.Context, groupID uuid.UUID, input UpdateGroupInput) (*GroupDTO, error) {
	record, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "group name is required")
		}
		record.Name = name
	}
	if input.Description != nil {
		record.Description = input.Description
	}

	if _, err := s.repo.UpdateGroup(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist addon group")
	}
	return s.GetGroup(ctx, groupID)
}

// DeleteGroup refuses while products still bind the group.
func (s *service) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	if _, err := s.loadGroup(ctx, groupID); err != nil {
		return err
	}
	count, err := s.repo.CountBindings(ctx, groupID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count group bindings")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "addon group is still bound to products")
	}
	if err := s.repo.DeleteGroup(ctx, groupID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete addon group")
	}
	return nil
}

func (s *service) GetGroup(ctx context.Context, groupID uuid.UUID) (*GroupDTO, error) {
	record, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return newGroupDTO(record), nil
}

func (s *service) ListGroups(ctx context.Context) ([]GroupDTO, error) {
	records, err := s.repo.ListGroups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addon groups")
	}
	dtos := make([]GroupDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *newGroupDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) CreateItem(ctx context.Context, groupID uuid.UUID, input ItemInput) (*GroupDTO, error) {
	if _, err := s.loadGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := validateItemFields(input.Name, input.Price); err != nil {
		return nil, err
	}

	record := &models.AddonItem{
		GroupID:     groupID,
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		IsAvailable: input.IsAvailable,
		Position:    input.Position,
	}
	if _, err := s.repo.CreateItem(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist addon item")
	}
	return s.GetGroup(ctx, groupID)
}

func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateItemInput) (*GroupDTO, error) {
	record, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		record.Price = *input.Price
	}
	if input.IsAvailable != nil {
		record.IsAvailable = *input.IsAvailable
	}
	if input.Position != nil {
		record.Position = *input.Position
	}
	if err := validateItemFields(record.Name, record.Price); err != nil {
		return nil, err
	}

	if _, err := s.repo.UpdateItem(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist addon item")
	}
	return s.GetGroup(ctx, record.GroupID)
}

func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.loadItem(ctx, itemID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete addon item")
	}
	return nil
}

func (s *service) loadGroup(ctx context.Context, groupID uuid.UUID) (*models.AddonGroup, error) {
	record, err := s.repo.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon group not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load addon group")
	}
	return record, nil
}

func (s *service) loadItem(ctx context.Context, itemID uuid.UUID) (*models.AddonItem, error) {
	record, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load addon item")
	}
	return record, nil
}

func validateItemFields(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item price must be non-negative")
	}
	return nil
}

func newGroupDTO(model *models.AddonGroup) *GroupDTO {
	items := make([]ItemDTO, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, ItemDTO{
			ID:          item.ID,
			Name:        item.Name,
			Price:       item.Price,
			IsAvailable: item.IsAvailable,
			Position:    item.Position,
		})
	}
	return &GroupDTO{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Items:       items,
	}
}
