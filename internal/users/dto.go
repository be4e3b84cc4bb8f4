package user

import (
	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
)

// UserDTO is the operator account read model. The password hash never leaves
// the service layer.
type UserDTO struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// FromModel maps the persisted account into the read model.
func FromModel(model *models.User) UserDTO {
	return UserDTO{
		ID:       model.ID,
		Email:    model.Email,
		Name:     model.Name,
		IsActive: model.IsActive,
	}
}
