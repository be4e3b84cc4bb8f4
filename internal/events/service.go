package event

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service manages sales events (fairs, concerts, pop-ups) a register session
// can be attached to.
type Service interface {
	CreateEvent(ctx context.Context, input CreateEventInput) (*EventDTO, error)
	UpdateEvent(ctx context.Context, eventID uuid.UUID, input UpdateEventInput) (*EventDTO, error)
	DeleteEvent(ctx context.Context, eventID uuid.UUID) error
	GetEvent(ctx context.Context, eventID uuid.UUID) (*EventDTO, error)
	ListEvents(ctx context.Context, activeOnly bool) ([]EventDTO, error)
}

// EventDTO is the event read model.
type EventDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	StartTime time.Time `json:"start_time"`
	IsActive  bool      `json:"is_active"`
}

// CreateEventInput holds the payload to create an event.
type CreateEventInput struct {
	Name      string
	Location  *string
	StartTime time.Time
	IsActive  bool
}

// UpdateEventInput holds optional mutation values.
type UpdateEventInput struct {
	Name      *string
	Location  *string
	StartTime *time.Time
	IsActive  *bool
}

type service struct {
	repo *Repository
}

// NewService constructs an event service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateEvent(ctx context.Context, input CreateEventInput) (*EventDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event name is required")
	}
	if input.StartTime.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "event start time is required")
	}

	record := &models.Event{
		Name:      name,
		Location:  input.Location,
		StartTime: input.StartTime,
		IsActive:  input.IsActive,
	}
	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist event")
	}
	return newEventDTO(created), nil
}

func (s *service) UpdateEvent(ctx context.Context, eventID uuid.UUID, input UpdateEventInput) (*EventDTO, error) {
	record, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "event name is required")
		}
		record.Name = name
	}
	if input.Location != nil {
		record.Location = input.Location
	}
	if input.StartTime != nil {
		record.StartTime = *input.StartTime
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist event")
	}
	return newEventDTO(updated), nil
}

func (s *service) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	if _, err := s.load(ctx, eventID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete event")
	}
	return nil
}

func (s *service) GetEvent(ctx context.Context, eventID uuid.UUID) (*EventDTO, error) {
	record, err := s.load(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return newEventDTO(record), nil
}

func (s *service) ListEvents(ctx context.Context, activeOnly bool) ([]EventDTO, error) {
	records, err := s.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	dtos := make([]EventDTO, 0, len(records))
	for i := range records {
		dtos = append(dtos, *newEventDTO(&records[i]))
	}
	return dtos, nil
}

func (s *service) load(ctx context.Context, eventID uuid.UUID) (*models.Event, error) {
	record, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	return record, nil
}

func newEventDTO(model *models.Event) *EventDTO {
	return &EventDTO{
		ID:        model.ID,
		Name:      model.Name,
		Location:  model.Location,
		StartTime: model.StartTime,
		IsActive:  model.IsActive,
	}
}
