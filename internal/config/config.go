// Package config loads the server configuration from defaults, an optional YAML file
// and LISTS_ prefixed environment variables, in that order of precedence.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of the environment variables read by Load.
// Nested keys are separated by a double underscore (e.g. LISTS_DATABASE__DRIVER).
const EnvPrefix = "LISTS_"

// Database drivers.
const (
	DriverStorm   = "storm"
	DriverMongoDB = "mongodb"
	DriverRedis   = "redis"
)

type (
	// A Config holds all the server settings.
	Config struct {
		Address  string   `koanf:"address"  validate:"required"`
		Log      Log      `koanf:"log"`
		Database Database `koanf:"database"`
		MongoDB  MongoDB  `koanf:"mongodb"`
		Redis    Redis    `koanf:"redis"`
		Lists    Lists    `koanf:"lists"`
		Auth     Auth     `koanf:"auth"`
		Metrics  Metrics  `koanf:"metrics"`
	}

	// Log settings.
	Log struct {
		Level  string `koanf:"level"  validate:"oneof=trace debug info warn warning error fatal panic"`
		Format string `koanf:"format" validate:"oneof=text json"`
		// File enables the rotated file output when not empty.
		File       string `koanf:"file"`
		MaxSizeMB  int    `koanf:"max_size_mb"  validate:"gte=0"`
		MaxBackups int    `koanf:"max_backups"  validate:"gte=0"`
	}

	// Database settings.
	Database struct {
		Driver string `koanf:"driver" validate:"oneof=storm mongodb redis"`
		// Path is the directory of the storm database file.
		Path  string `koanf:"path"`
		Codec string `koanf:"codec"`
	}

	// MongoDB settings.
	MongoDB struct {
		URI      string        `koanf:"uri"      validate:"required_if=Driver mongodb"`
		Database string        `koanf:"database"`
		Timeout  time.Duration `koanf:"timeout"`
		// Driver is copied from Database.Driver before validation.
		Driver string `koanf:"-"`
	}

	// Redis settings.
	Redis struct {
		Address  string `koanf:"address"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db" validate:"gte=0"`
	}

	// Lists settings.
	Lists struct {
		ListIndex     string `koanf:"list_index"      validate:"required"`
		ListItemIndex string `koanf:"list_item_index" validate:"required"`
		// Spaces are the spaces initialized by the init command, the default space is always included.
		Spaces          []string `koanf:"spaces"`
		ImportBatchSize int      `koanf:"import_batch_size" validate:"gt=0"`
		ExportPageSize  int      `koanf:"export_page_size"  validate:"gt=0"`
	}

	// Auth settings.
	Auth struct {
		UserHeader  string `koanf:"user_header"  validate:"required"`
		DefaultUser string `koanf:"default_user" validate:"required"`
	}

	// Metrics settings.
	Metrics struct {
		Enabled bool `koanf:"enabled"`
	}
)

// Defaults returns the default settings.
func Defaults() map[string]any {
	return map[string]any{
		"address":                 "localhost:5000",
		"log.level":               "info",
		"log.format":              "text",
		"log.max_size_mb":         100,
		"log.max_backups":         3,
		"database.driver":         DriverStorm,
		"database.codec":          "msgpack",
		"mongodb.database":        "lists",
		"mongodb.timeout":         "10s",
		"redis.address":           "localhost:6379",
		"lists.list_index":        ".lists",
		"lists.list_item_index":   ".items",
		"lists.import_batch_size": 100,
		"lists.export_page_size":  100,
		"auth.user_header":        "X-Remote-User",
		"auth.default_user":       "elastic",
		"metrics.enabled":         true,
	}
}

// Load reads the configuration. The file is skipped when filename is empty.
func Load(filename string) (*Config, error) {
	konf := koanf.New(".")
	if err := konf.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "could not load %s", filename)
		}
	}

	err := konf.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load environment")
	}

	var cfg Config
	if err = konf.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode configuration")
	}

	cfg.MongoDB.Driver = cfg.Database.Driver
	if err = validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// AllSpaces returns the default space followed by the configured spaces.
func (l Lists) AllSpaces() []string {
	spaces := []string{""}
	for _, space := range l.Spaces {
		if space = strings.TrimSpace(space); space != "" && space != "default" {
			spaces = append(spaces, space)
		}
	}
	return spaces
}
