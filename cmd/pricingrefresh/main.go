package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/dbcalc/dbcalc/internal/config"
	"github.com/dbcalc/dbcalc/internal/database"
	"github.com/dbcalc/dbcalc/internal/logger"
)

func main() {
	logger.Init()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.UsesDatabase() {
		slog.Error("DATABASE_URL or DATABASE_SECRET_ID is required")
		os.Exit(1)
	}

	regions := strings.Split(getEnv("PRICING_REGIONS", "us-east-2"), ",")
	for i := range regions {
		regions[i] = strings.TrimSpace(regions[i])
	}
	baseName := getEnv("PRICING_BASE_PRESET", database.DefaultHardware)

	var sm config.SecretGetter
	if cfg.DatabaseURL == "" {
		smCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("Failed to load AWS config", "error", err)
			os.Exit(1)
		}
		sm = secretsmanager.NewFromConfig(smCfg)
	}
	dsn, err := config.DatabaseURL(ctx, cfg, sm)
	if err != nil {
		slog.Error("Failed to resolve database URL", "error", err)
		os.Exit(1)
	}

	repo, err := database.NewRepository(ctx, dsn)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	base, err := basePreset(ctx, repo, baseName)
	if err != nil {
		slog.Error("Failed to load base preset", "preset", baseName, "error", err)
		repo.Close()
		os.Exit(1)
	}

	// AWS Pricing API is only available in us-east-1.
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("us-east-1"))
	if err != nil {
		slog.Error("Failed to load AWS config", "error", err)
		repo.Close()
		os.Exit(1)
	}
	client := pricing.NewFromConfig(awsCfg)

	var updated int
	for _, region := range regions {
		hw, err := refreshRegion(ctx, client, repo, base, region)
		if err != nil {
			slog.Warn("Pricing refresh failed", "region", region, "error", err)
		} else {
			updated++
			slog.Info("Preset updated", "preset", hw.Name, "ssd_price", hw.Cost.SSDPrice, "spinning_price", hw.Cost.SpinningPrice)
		}
		time.Sleep(200 * time.Millisecond)
	}

	slog.Info("Pricing refresh complete", "base", base.Name, "updated", updated, "regions", len(regions))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
