package controllers

import (
	"net/http"

	"github.com/petrocini/fast-sale-backend/api/responses"
	"github.com/petrocini/fast-sale-backend/api/validators"
	addonsvc "github.com/petrocini/fast-sale-backend/internal/addons"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type createAddonGroupRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
}

type updateAddonGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type createAddonItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	IsAvailable *bool  `json:"is_available,omitempty"`
	Position    int    `json:"position" validate:"min=0"`
}

type updateAddonItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Price       *string `json:"price,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
	Position    *int    `json:"position,omitempty" validate:"omitempty,min=0"`
}

func CreateAddonGroup(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		var payload createAddonGroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateGroup(r.Context(), addonsvc.CreateGroupInput{
			Name:        payload.Name,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func UpdateAddonGroup(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		groupID, err := validators.UUIDParam(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAddonGroupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateGroup(r.Context(), groupID, addonsvc.UpdateGroupInput{
			Name:        payload.Name,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func DeleteAddonGroup(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		groupID, err := validators.UUIDParam(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteGroup(r.Context(), groupID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func GetAddonGroup(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		groupID, err := validators.UUIDParam(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.GetGroup(r.Context(), groupID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, group)
	}
}

func ListAddonGroups(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		groups, err := svc.ListGroups(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, groups)
	}
}

func CreateAddonItem(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		groupID, err := validators.UUIDParam(r, "groupId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createAddonItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}
		isAvailable := true
		if payload.IsAvailable != nil {
			isAvailable = *payload.IsAvailable
		}

		group, err := svc.CreateItem(r.Context(), groupID, addonsvc.ItemInput{
			Name:        payload.Name,
			Price:       price,
			IsAvailable: isAvailable,
			Position:    payload.Position,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

func UpdateAddonItem(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		itemID, err := validators.UUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateAddonItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := addonsvc.UpdateItemInput{
			Name:        payload.Name,
			IsAvailable: payload.IsAvailable,
			Position:    payload.Position,
		}
		if payload.Price != nil {
			price, err := decimal.NewFromString(*payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.Price = &price
		}

		group, err := svc.UpdateItem(r.Context(), itemID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, group)
	}
}

func DeleteAddonItem(svc addonsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "addon service unavailable"))
			return
		}

		itemID, err := validators.UUIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
