package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/petrocini/fast-sale-backend/api/responses"
	"github.com/petrocini/fast-sale-backend/api/validators"
	productsvc "github.com/petrocini/fast-sale-backend/internal/products"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// CreateProduct handles catalog product creation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateProduct applies a partial update to a product.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteProduct removes a product from the catalog.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// GetProductDetail returns the full composition shape for one product.
func GetProductDetail(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetProductDetail(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ListProducts returns catalog listings, optionally filtered by category.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		categoryID, err := validators.OptionalUUIDQuery(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listings, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			CategoryID: categoryID,
			ActiveOnly: validators.BoolQuery(r, "active_only"),
			Pagination: validators.PaginationQuery(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listings)
	}
}

type createProductRequest struct {
	CategoryID   string                    `json:"category_id" validate:"required,uuid"`
	Name         string                    `json:"name" validate:"required"`
	Description  *string                   `json:"description,omitempty"`
	Price        string                    `json:"price" validate:"required"`
	StockQty     int                       `json:"stock_qty" validate:"omitempty,min=0"`
	IsActive     *bool                     `json:"is_active,omitempty"`
	AddonConfigs []productAddonConfigInput `json:"addon_configs,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	CategoryID   *string                    `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Name         *string                    `json:"name,omitempty"`
	Description  *string                    `json:"description,omitempty"`
	Price        *string                    `json:"price,omitempty"`
	StockQty     *int                       `json:"stock_qty,omitempty" validate:"omitempty,min=0"`
	IsActive     *bool                      `json:"is_active,omitempty"`
	AddonConfigs *[]productAddonConfigInput `json:"addon_configs,omitempty" validate:"omitempty,dive"`
}

type productAddonConfigInput struct {
	GroupID      string `json:"group_id" validate:"required,uuid"`
	MinSelection int    `json:"min_selection" validate:"min=0"`
	MaxSelection int    `json:"max_selection" validate:"min=0"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
}

func (r createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	categoryID, err := uuid.Parse(r.CategoryID)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}
	configs, err := toAddonConfigInputs(r.AddonConfigs)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return productsvc.CreateProductInput{
		CategoryID:   categoryID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        price,
		StockQty:     r.StockQty,
		IsActive:     isActive,
		AddonConfigs: configs,
	}, nil
}

func (r updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:        r.Name,
		Description: r.Description,
		StockQty:    r.StockQty,
		IsActive:    r.IsActive,
	}

	if r.CategoryID != nil {
		categoryID, err := uuid.Parse(*r.CategoryID)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
		}
		input.CategoryID = &categoryID
	}
	if r.Price != nil {
		price, err := decimal.NewFromString(*r.Price)
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
		}
		input.Price = &price
	}
	if r.AddonConfigs != nil {
		configs, err := toAddonConfigInputs(*r.AddonConfigs)
		if err != nil {
			return productsvc.UpdateProductInput{}, err
		}
		input.AddonConfigs = &configs
	}
	return input, nil
}

func toAddonConfigInputs(requests []productAddonConfigInput) ([]productsvc.AddonConfigInput, error) {
	configs := make([]productsvc.AddonConfigInput, 0, len(requests))
	for _, req := range requests {
		groupID, err := uuid.Parse(req.GroupID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid group id")
		}
		configs = append(configs, productsvc.AddonConfigInput{
			GroupID:      groupID,
			MinSelection: req.MinSelection,
			MaxSelection: req.MaxSelection,
			DisplayOrder: req.DisplayOrder,
		})
	}
	return configs, nil
}
