package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	pkgerrors "github.com/petrocini/fast-sale-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func TestValidateProductFields(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := validateProductFields("Burger", decimal.RequireFromString("9.90"), 5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("blankName", func(t *testing.T) {
		err := validateProductFields("   ", decimal.Zero, 0)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("negativePrice", func(t *testing.T) {
		err := validateProductFields("Burger", decimal.RequireFromString("-0.01"), 0)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("negativeStock", func(t *testing.T) {
		err := validateProductFields("Burger", decimal.Zero, -1)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestValidateSelectionBounds(t *testing.T) {
	groupID := uuid.New()

	if err := validateSelectionBounds(AddonConfigInput{GroupID: groupID, MinSelection: 0, MaxSelection: 0}); err != nil {
		t.Fatalf("zero/zero bounds are legal: %v", err)
	}
	if err := validateSelectionBounds(AddonConfigInput{GroupID: groupID, MinSelection: 1, MaxSelection: 3}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := validateSelectionBounds(AddonConfigInput{GroupID: groupID, MinSelection: 2, MaxSelection: 1}); err == nil {
		t.Fatal("expected error when max < min")
	}
	if err := validateSelectionBounds(AddonConfigInput{GroupID: groupID, MinSelection: -1, MaxSelection: 1}); err == nil {
		t.Fatal("expected error for negative min")
	}
	if err := validateSelectionBounds(AddonConfigInput{MinSelection: 0, MaxSelection: 1}); err == nil {
		t.Fatal("expected error for nil group id")
	}
}

func TestEnsureUniqueGroups(t *testing.T) {
	groupID := uuid.New()

	err := ensureUniqueGroups([]AddonConfigInput{
		{GroupID: groupID},
		{GroupID: uuid.New()},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err = ensureUniqueGroups([]AddonConfigInput{
		{GroupID: groupID},
		{GroupID: groupID},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for duplicate group, got %v", err)
	}
}

func TestApplyUpdateToProduct(t *testing.T) {
	product := &models.Product{
		Name:     "old name",
		Price:    decimal.RequireFromString("5.00"),
		StockQty: 3,
		IsActive: true,
	}

	name := "  New Name "
	price := decimal.RequireFromString("7.50")
	active := false
	input := UpdateProductInput{
		Name:     &name,
		Price:    &price,
		IsActive: &active,
	}

	applyUpdateToProduct(product, input)

	if product.Name != "New Name" {
		t.Fatalf("expected trimmed name, got %q", product.Name)
	}
	if !product.Price.Equal(price) {
		t.Fatalf("expected price update, got %s", product.Price)
	}
	if product.IsActive {
		t.Fatal("expected is_active to flip")
	}
	if product.StockQty != 3 {
		t.Fatal("unset fields must stay untouched")
	}
}

func TestNewProductDTOOrdersConfigs(t *testing.T) {
	groupA := uuid.New()
	groupB := uuid.New()

	model := &models.Product{
		ID:    uuid.New(),
		Name:  "Burger",
		Price: decimal.RequireFromString("10.00"),
		AddonConfigs: []models.ProductAddonConfig{
			{GroupID: groupB, DisplayOrder: 2, Group: &models.AddonGroup{ID: groupB, Name: "Sauces"}},
			{GroupID: groupA, DisplayOrder: 1, Group: &models.AddonGroup{ID: groupA, Name: "Extras"}},
		},
	}

	dto := NewProductDTO(model)
	if len(dto.AddonConfigs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(dto.AddonConfigs))
	}
	if dto.AddonConfigs[0].GroupID != groupA || dto.AddonConfigs[1].GroupID != groupB {
		t.Fatal("configs must be sorted by display order")
	}
}

func TestProductDTOLookupHelpers(t *testing.T) {
	groupID := uuid.New()
	itemID := uuid.New()

	dto := &ProductDTO{
		AddonConfigs: []AddonConfigDTO{{
			GroupID: groupID,
			Group: AddonGroupDTO{
				ID:    groupID,
				Items: []AddonItemDTO{{ID: itemID, Name: "Cheese"}},
			},
		}},
	}

	config := dto.Config(groupID)
	if config == nil {
		t.Fatal("expected config for bound group")
	}
	if config.Item(itemID) == nil {
		t.Fatal("expected item lookup to succeed")
	}
	if dto.Config(uuid.New()) != nil {
		t.Fatal("unexpected config for unbound group")
	}
	if config.Item(uuid.New()) != nil {
		t.Fatal("unexpected item for unknown id")
	}
}
