// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the export configuration from viper (config file,
// KEEP_EXPORT_* environment, bound flags) and validates it.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/keep-export/pkg/types"
)

// Config keys, matching the mapstructure tags of types.ExportConfig.
const (
	KeyImportDir = "import_dir"
	KeyExportDir = "export_dir"
	KeyFormat    = "format"
	KeyTimezone  = "timezone"
	KeyManifest  = "manifest"
	KeyLogLevel  = "log_level"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	d := types.DefaultExportConfig()
	v.SetDefault(KeyImportDir, d.ImportDir)
	v.SetDefault(KeyExportDir, d.ExportDir)
	v.SetDefault(KeyFormat, string(d.Format))
	v.SetDefault(KeyTimezone, d.Timezone)
	v.SetDefault(KeyManifest, d.Manifest)
	v.SetDefault(KeyLogLevel, d.LogLevel)
}

// Load decodes the configuration held by v and validates it.
func Load(v *viper.Viper) (types.ExportConfig, error) {
	cfg := types.DefaultExportConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return types.ExportConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Format = types.OutputFormat(strings.ToLower(string(cfg.Format)))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate(cfg); err != nil {
		return types.ExportConfig{}, err
	}
	return cfg, nil
}

// Validate checks cfg and reports every invalid field in one error.
func Validate(cfg types.ExportConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		if _, locErr := Location(cfg.Timezone); locErr != nil {
			return fmt.Errorf("invalid config: %w", locErr)
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s (got %q)", fe.Field(), fe.Param(), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s check", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Location resolves a timezone name. Empty and "Local" mean time.Local.
func Location(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, types.DefaultTimezone) {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}
