package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/config"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/security"
	"gorm.io/gorm"
)

// Service manages operator accounts.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
}

// CreateUserInput holds the payload to create an operator account.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	IsActive bool
}

// UpdateUserInput holds optional account mutations.
type UpdateUserInput struct {
	Name     *string
	Password *string
	IsActive *bool
}

type service struct {
	repo        *Repository
	passwordCfg config.PasswordConfig
}

// NewService constructs a user service instance.
func NewService(repo *Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	record := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsActive:     input.IsActive,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist user")
	}

	dto := FromModel(created)
	return &dto, nil
}

func (s *service) UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
		}
		record.Name = name
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
		}
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		record.PasswordHash = hash
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist user")
	}
	dto := FromModel(updated)
	return &dto, nil
}

func (s *service) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := FromModel(record)
	return &dto, nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]UserDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, FromModel(&records[i]))
	}
	return dtos, nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	record, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return record, nil
}
