// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	userstore "github.com/gashatech/adminhub/internal/app/store/users"
	"github.com/gashatech/adminhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail != "" {
		if err := ensureSuperAdmin(ctx, appCfg, deps, logger); err != nil {
			return fmt.Errorf("ensure super-admin: %w", err)
		}
	}
	return nil
}

// ensureSuperAdmin guarantees the configured super-admin account exists.
// An existing user is promoted if needed; a missing user is created with
// the configured password. Without a password we refuse to create an
// account nobody could sign into.
func ensureSuperAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	store := userstore.New(deps.AdminHubMongoDatabase)

	existing, err := store.GetByEmail(ctx, appCfg.SuperAdminEmail)
	if err == nil {
		if existing.Role == models.RoleSuperAdmin {
			return nil
		}
		logger.Info("promoting existing user to super-admin",
			zap.String("email", existing.Email),
		)
		return store.UpdateFields(ctx, existing.ID, userstore.Update{Role: models.RoleSuperAdmin})
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	if appCfg.SuperAdminPassword == "" {
		return fmt.Errorf("superadmin_password required to create %s", appCfg.SuperAdminEmail)
	}

	_, err = store.Create(ctx, models.User{
		FullName: appCfg.SuperAdminName,
		Email:    appCfg.SuperAdminEmail,
		Role:     models.RoleSuperAdmin,
	}, appCfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	logger.Info("created super-admin account",
		zap.String("email", appCfg.SuperAdminEmail),
	)
	return nil
}
