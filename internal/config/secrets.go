package config

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretGetter is the subset of the Secrets Manager client DatabaseURL needs.
type SecretGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// rdsSecret is the JSON layout RDS writes for managed database credentials.
type rdsSecret struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Host     string          `json:"host"`
	Port     json.RawMessage `json:"port"`
	DBName   string          `json:"dbname"`
}

// DatabaseURL returns the Postgres DSN. DATABASE_URL is used as is; otherwise
// the secret named by DATABASE_SECRET_ID is fetched and may hold either a DSN
// or RDS-style JSON credentials. It returns "" when no database is configured.
func DatabaseURL(ctx context.Context, cfg *Config, sm SecretGetter) (string, error) {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL, nil
	}
	if cfg.DatabaseSecretID == "" {
		return "", nil
	}
	if sm == nil {
		return "", fmt.Errorf("DATABASE_SECRET_ID set but no secrets client available")
	}

	out, err := sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(cfg.DatabaseSecretID),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", cfg.DatabaseSecretID, err)
	}
	value := strings.TrimSpace(aws.ToString(out.SecretString))
	if value == "" {
		return "", fmt.Errorf("secret %s has no string value", cfg.DatabaseSecretID)
	}
	if !strings.HasPrefix(value, "{") {
		return value, nil
	}

	var s rdsSecret
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return "", fmt.Errorf("parse secret %s: %w", cfg.DatabaseSecretID, err)
	}
	if s.Host == "" || s.Username == "" {
		return "", fmt.Errorf("secret %s lacks host or username", cfg.DatabaseSecretID)
	}

	host := s.Host
	if port := strings.Trim(string(s.Port), `"`); port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return "", fmt.Errorf("secret %s: bad port %s", cfg.DatabaseSecretID, port)
		}
		host += ":" + port
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(s.Username, s.Password),
		Host:   host,
		Path:   "/" + s.DBName,
	}
	return u.String(), nil
}
