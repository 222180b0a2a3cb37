// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/gashatech/adminhub/internal/app/store/migrate"
	"github.com/gashatech/adminhub/internal/app/system/indexes"
	"github.com/gashatech/adminhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection for the app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
	)

	return DBDeps{
		AdminHubMongoClient:   client,
		AdminHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates indexes and applies pending schema migrations.
// Runs on every startup; index creation is idempotent.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.AdminHubMongoDatabase

	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	if appCfg.MigrationsPath != "" {
		if _, err := os.Stat(appCfg.MigrationsPath); err != nil {
			return fmt.Errorf("migrations path %q: %w", appCfg.MigrationsPath, err)
		}
		applied, err := migrate.Run(ctx, db, os.DirFS(appCfg.MigrationsPath), logger)
		if err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		if applied > 0 {
			logger.Info("schema migrations applied", zap.Int("count", applied))
		}
	}

	return nil
}
