package config

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Storage != StorageMongo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.Leeway != 0 {
		t.Fatalf("unexpected token defaults: %+v", cfg.Auth)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Uploads.MaxBytes != 5<<20 || cfg.Uploads.Dir != "uploads/products" {
		t.Fatalf("unexpected upload defaults: %+v", cfg.Uploads)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestLoad_SecretRequired(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"JWT_TTL":      "1h",
		"JWT_LEEWAY":   "30s",
		"STORAGE":      "postgres",
		"CORS_ORIGINS": "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.TokenTTL != time.Hour || cfg.Auth.Leeway != 30*time.Second {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Storage != StoragePostgres {
		t.Fatalf("expected postgres storage, got %s", cfg.Storage)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_UnknownStorage(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"STORAGE":    "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
}

func TestConfig_LogOmitsSecret(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "do-not-print-me",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	log.Info().Object("config", cfg).Msg("loaded")

	if strings.Contains(buf.String(), "do-not-print-me") {
		t.Fatalf("secret leaked into log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"storage":"mongo"`) {
		t.Fatalf("expected config fields in log: %s", buf.String())
	}
}
