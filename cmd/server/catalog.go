package main

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/dbcalc/dbcalc/internal/config"
	"github.com/dbcalc/dbcalc/internal/database"
)

// newSecretsClient is replaced in tests.
var newSecretsClient = func(ctx context.Context, region string) (config.SecretGetter, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return secretsmanager.NewFromConfig(awsCfg), nil
}

// openRepository is replaced in tests.
var openRepository = func(ctx context.Context, dsn string) (catalogStore, error) {
	return database.NewRepository(ctx, dsn)
}

// catalogStore is a Postgres-backed catalog.
type catalogStore interface {
	database.Repo
	Migrate(ctx context.Context) error
	Close()
}

// openCatalog returns the catalog the server reads from and a func that
// releases it. Without a database the built-in catalog is served.
func openCatalog(ctx context.Context, cfg *config.Config) (database.Repo, func(), error) {
	if !cfg.UsesDatabase() {
		slog.Info("No database configured, serving built-in catalog")
		return database.NewBuiltinRepo(), func() {}, nil
	}

	var sm config.SecretGetter
	if cfg.DatabaseURL == "" {
		var err error
		if sm, err = newSecretsClient(ctx, cfg.AWSRegion); err != nil {
			return nil, nil, err
		}
	}
	dsn, err := config.DatabaseURL(ctx, cfg, sm)
	if err != nil {
		return nil, nil, err
	}

	repo, err := openRepository(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	if cfg.CatalogMigrate {
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, nil, err
		}
		slog.Info("Catalog schema applied")
	}
	if cfg.CatalogSeed {
		if err := database.Seed(ctx, repo, database.NewBuiltinRepo()); err != nil {
			repo.Close()
			return nil, nil, fmt.Errorf("seed catalog: %w", err)
		}
		slog.Info("Catalog seeded with built-in entries")
	}
	return repo, repo.Close, nil
}
