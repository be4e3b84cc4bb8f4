package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together event persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new event.
func (r *Repository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Update saves the event fields.
func (r *Repository) Update(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := r.db.WithContext(ctx).Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes the event.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error
}

// FindByID loads one event.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events newest first, optionally active-only.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]models.Event, error) {
	query := r.db.WithContext(ctx).Order("start_time DESC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
