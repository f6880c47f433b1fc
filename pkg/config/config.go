// Package config loads flowboard settings from a TOML file.
//
// Every section has usable defaults, so a missing file is not an error:
//
//	cfg, err := config.Load("")          // $XDG_CONFIG_HOME/flowboard/config.toml
//	cfg, err := config.Load("team.toml") // explicit path
//
// Values are checked with struct tags after decoding; violations are reported
// as INVALID_CONFIG errors naming the offending key.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/flowboard/pkg/errors"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Config is the root of the configuration file.
type Config struct {
	Editor Editor `toml:"editor"`
	Layout Layout `toml:"layout"`
	Sync   Sync   `toml:"sync"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Editor tunes the command engine and the editing session.
type Editor struct {
	Grid           float64 `toml:"grid" validate:"gte=0"`
	PasteOffset    float64 `toml:"paste_offset" validate:"gt=0"`
	GroupPadding   float64 `toml:"group_padding" validate:"gte=0"`
	HistoryDepth   int     `toml:"history_depth" validate:"gte=1,lte=10000"`
	GuideTolerance float64 `toml:"guide_tolerance" validate:"gte=0"`
}

// Layout is the grid used for auto-layout and for placing synced rows.
type Layout struct {
	Columns  int     `toml:"columns" validate:"gte=1"`
	SpacingX float64 `toml:"spacing_x" validate:"gt=0"`
	SpacingY float64 `toml:"spacing_y" validate:"gt=0"`
	OriginX  float64 `toml:"origin_x"`
	OriginY  float64 `toml:"origin_y"`
}

// Sync controls reconciliation against an external source.
type Sync struct {
	OrphanPolicy string `toml:"orphan_policy" validate:"oneof=delete keep"`
	DefaultShape string `toml:"default_shape"`
}

// Store selects and configures the persistence backend.
type Store struct {
	Backend       string `toml:"backend" validate:"oneof=file memory redis mongo sqlite"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`
	MongoURI      string `toml:"mongo_uri" validate:"required_if=Backend mongo"`
	MongoDatabase string `toml:"mongo_database"`
	SQLitePath    string `toml:"sqlite_path" validate:"required_if=Backend sqlite"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: Editor{
			Grid:           10,
			PasteOffset:    20,
			GroupPadding:   20,
			HistoryDepth:   100,
			GuideTolerance: 5,
		},
		Layout: Layout{
			Columns:  5,
			SpacingX: 240,
			SpacingY: 160,
			OriginX:  40,
			OriginY:  40,
		},
		Sync: Sync{
			OrphanPolicy: "delete",
		},
		Store: Store{
			Backend:       BackendFile,
			MongoDatabase: "flowboard",
			SQLitePath:    "flowboard.db",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/flowboard/config.toml, falling back to
// the platform config directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "flowboard", "config.toml")
}

// DefaultStoreDir is where the file backend keeps processes when no dir is
// configured.
func DefaultStoreDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".flowboard", "processes")
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "flowboard", "processes")
}

// Load reads the configuration at path, or at [DefaultPath] when path is
// empty. A missing default file yields [Default]; a missing explicit file is
// an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, cfg)
}

// Parse decodes TOML data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every section's constraints.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
	}
	fe := verrs[0]
	return errors.New(errors.ErrCodeInvalidConfig, "%s: %s", keyName(fe), describe(fe))
}

// Encode renders c as TOML.
func (c Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}

// keyName maps a validator namespace like "Config.Store.RedisAddr" onto the
// TOML key "store.redis_addr".
func keyName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
