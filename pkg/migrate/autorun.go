package migrate

import (
	"context"
	"fmt"

	"github.com/petrocini/fast-sale-backend/pkg/config"
	"github.com/petrocini/fast-sale-backend/pkg/db"
	"github.com/petrocini/fast-sale-backend/pkg/db/models"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode
// and the feature flag is enabled. The sqlite dev driver uses GORM AutoMigrate
// because the goose SQL files target Postgres.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite || cfg.DB.Driver == "sqlite" {
		logg.Info(ctx, "auto-migrating sqlite schema")
		return client.DB().AutoMigrate(
			&models.Category{},
			&models.AddonGroup{},
			&models.AddonItem{},
			&models.Product{},
			&models.ProductAddonConfig{},
			&models.Event{},
			&models.User{},
		)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
