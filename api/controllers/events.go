package controllers

import (
	"net/http"
	"time"

	"github.com/petrocini/fast-sale-backend/api/responses"
	"github.com/petrocini/fast-sale-backend/api/validators"
	eventsvc "github.com/petrocini/fast-sale-backend/internal/events"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
)

type createEventRequest struct {
	Name      string    `json:"name" validate:"required"`
	Location  *string   `json:"location,omitempty"`
	StartTime time.Time `json:"start_time" validate:"required"`
	IsActive  *bool     `json:"is_active,omitempty"`
}

type updateEventRequest struct {
	Name      *string    `json:"name,omitempty"`
	Location  *string    `json:"location,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	IsActive  *bool      `json:"is_active,omitempty"`
}

func CreateEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		var payload createEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}
		created, err := svc.CreateEvent(r.Context(), eventsvc.CreateEventInput{
			Name:      payload.Name,
			Location:  payload.Location,
			StartTime: payload.StartTime,
			IsActive:  isActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func UpdateEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		eventID, err := validators.UUIDParam(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateEventRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateEvent(r.Context(), eventID, eventsvc.UpdateEventInput{
			Name:      payload.Name,
			Location:  payload.Location,
			StartTime: payload.StartTime,
			IsActive:  payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func DeleteEvent(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		eventID, err := validators.UUIDParam(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteEvent(r.Context(), eventID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ListEvents(svc eventsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		listings, err := svc.ListEvents(r.Context(), validators.BoolQuery(r, "active_only"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listings)
	}
}
