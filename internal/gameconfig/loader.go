package gameconfig

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/osse101/DegenBox_Go/internal/domain"
	"github.com/osse101/DegenBox_Go/internal/logger"
	"github.com/osse101/DegenBox_Go/internal/validation"
)

//go:embed schema/*.json
var schemaFiles embed.FS

var schemaValidator = func() validation.SchemaValidator {
	sub, err := fs.Sub(schemaFiles, "schema")
	if err != nil {
		panic(err)
	}
	return validation.NewSchemaValidator(sub)
}()

// Load reads a platform configuration from a JSON file. An empty path yields
// the defaults.
func Load(ctx context.Context, path string) (domain.PlatformConfig, error) {
	log := logger.FromContext(ctx)
	if path == "" {
		log.Info(LogMsgConfigDefaults)
		return domain.DefaultPlatformConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.PlatformConfig{}, fmt.Errorf("%s: %w", ErrContextReadConfigFile, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return domain.PlatformConfig{}, err
	}

	log.Info(LogMsgConfigLoaded, "path", path, "commission_bps", cfg.CommissionBPS, "paused", cfg.Paused)
	return cfg, nil
}

// Parse validates a JSON document against the bundled schema and the domain
// invariants. Fields missing from the document keep their default values.
func Parse(data []byte) (domain.PlatformConfig, error) {
	if err := schemaValidator.ValidateBytes(data, SchemaName); err != nil {
		return domain.PlatformConfig{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, ErrContextSchema, err)
	}

	cfg := domain.DefaultPlatformConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return domain.PlatformConfig{}, fmt.Errorf("%s: %w", ErrContextDecodeConfig, err)
	}

	if err := Validate(cfg); err != nil {
		return domain.PlatformConfig{}, err
	}
	return cfg, nil
}
