package product

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	"github.com/petrocini/fast-sale-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  icon TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	addonGroups := `
CREATE TABLE IF NOT EXISTS addon_groups (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	addonItems := `
CREATE TABLE IF NOT EXISTS addon_items (
  id TEXT PRIMARY KEY,
  group_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  is_available INTEGER NOT NULL DEFAULT 1,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price TEXT NOT NULL,
  stock_qty INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	productAddonConfigs := `
CREATE TABLE IF NOT EXISTS product_addon_configs (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  group_id TEXT NOT NULL,
  min_selection INTEGER NOT NULL DEFAULT 0,
  max_selection INTEGER NOT NULL DEFAULT 1,
  display_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`

	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(addonGroups).Error)
	require.NoError(t, db.Exec(addonItems).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(productAddonConfigs).Error)

	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.New(), Name: name, IsActive: true}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedGroupWithItems(t *testing.T, db *gorm.DB, name string, itemNames ...string) *models.AddonGroup {
	t.Helper()
	group := &models.AddonGroup{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(group).Error)
	// insert in reverse display position so ordering is exercised
	for i := len(itemNames) - 1; i >= 0; i-- {
		item := &models.AddonItem{
			ID:          uuid.New(),
			GroupID:     group.ID,
			Name:        itemNames[i],
			Price:       decimal.RequireFromString("1.50"),
			IsAvailable: true,
			Position:    i,
		}
		require.NoError(t, db.Create(item).Error)
	}
	return group
}

func TestRepositoryFindDetailOrdersAssociations(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Burgers")
	extras := seedGroupWithItems(t, db, "Extras", "Bacon", "Cheese")
	sauces := seedGroupWithItems(t, db, "Sauces", "Ketchup")

	created, err := repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       "Classic Burger",
		Price:      decimal.RequireFromString("10.00"),
		StockQty:   5,
		IsActive:   true,
		AddonConfigs: []models.ProductAddonConfig{
			{ID: uuid.New(), GroupID: sauces.ID, MinSelection: 0, MaxSelection: 2, DisplayOrder: 2},
			{ID: uuid.New(), GroupID: extras.ID, MinSelection: 1, MaxSelection: 3, DisplayOrder: 1},
		},
	})
	require.NoError(t, err)

	detail, err := repo.FindDetail(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.AddonConfigs, 2)

	assert.Equal(t, extras.ID, detail.AddonConfigs[0].GroupID)
	assert.Equal(t, sauces.ID, detail.AddonConfigs[1].GroupID)

	require.NotNil(t, detail.AddonConfigs[0].Group)
	items := detail.AddonConfigs[0].Group.Items
	require.Len(t, items, 2)
	assert.Equal(t, "Bacon", items[0].Name)
	assert.Equal(t, "Cheese", items[1].Name)
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	burgers := seedCategory(t, db, "Burgers")
	drinks := seedCategory(t, db, "Drinks")

	active, err := repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		CategoryID: burgers.ID,
		Name:       "Cheeseburger",
		Price:      decimal.RequireFromString("12.00"),
		IsActive:   true,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		CategoryID: burgers.ID,
		Name:       "Retired Burger",
		Price:      decimal.RequireFromString("8.00"),
		IsActive:   false,
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		CategoryID: drinks.ID,
		Name:       "Lemonade",
		Price:      decimal.RequireFromString("4.00"),
		IsActive:   true,
	})
	require.NoError(t, err)

	listed, err := repo.List(ctx, &burgers.ID, true, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, active.ID, listed[0].ID)

	all, err := repo.List(ctx, &burgers.ID, false, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepositoryReplaceAddonConfigs(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Burgers")
	extras := seedGroupWithItems(t, db, "Extras", "Cheese")
	sauces := seedGroupWithItems(t, db, "Sauces", "Mayo")

	created, err := repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       "Build Your Own",
		Price:      decimal.RequireFromString("9.00"),
		IsActive:   true,
		AddonConfigs: []models.ProductAddonConfig{
			{ID: uuid.New(), GroupID: extras.ID, MaxSelection: 2, DisplayOrder: 1},
		},
	})
	require.NoError(t, err)

	err = repo.ReplaceAddonConfigs(ctx, created.ID, []models.ProductAddonConfig{
		{ID: uuid.New(), GroupID: sauces.ID, MinSelection: 1, MaxSelection: 1, DisplayOrder: 1},
		{ID: uuid.New(), GroupID: extras.ID, MinSelection: 0, MaxSelection: 3, DisplayOrder: 2},
	})
	require.NoError(t, err)

	detail, err := repo.FindDetail(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.AddonConfigs, 2)
	assert.Equal(t, sauces.ID, detail.AddonConfigs[0].GroupID)
	assert.Equal(t, 1, detail.AddonConfigs[0].MinSelection)

	err = repo.ReplaceAddonConfigs(ctx, created.ID, nil)
	require.NoError(t, err)

	detail, err = repo.FindDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.AddonConfigs)
}
