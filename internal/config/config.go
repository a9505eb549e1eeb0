// Package config reads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/guessfilm/internal/lexicon"
	"github.com/mcoot/guessfilm/internal/services/game"
)

var (
	ErrMissingVariable = errors.New("missing environment variable")
	ErrInvalidVariable = errors.New("invalid environment variable")
)

// Environment variable names
const (
	EnvAddr             = "GUESSFILM_ADDR"
	EnvFilmsFilePath    = "FILMS_FILE_PATH"
	EnvResourcesPath    = "RESOURCES_PATH"
	EnvStorageType      = "STORAGE_TYPE"
	EnvRedisURL         = "REDIS_URL"
	EnvMongoURI         = "MONGO_URI"
	EnvMongoDatabase    = "MONGO_DATABASE"
	EnvPostgresURL      = "POSTGRES_URL"
	EnvNumberOfAttempts = "NUMBER_OF_ATTEMPTS"
	EnvWriteThrough     = "WRITE_THROUGH"
	EnvFlushInterval    = "FLUSH_INTERVAL"
	EnvLanguage         = "LANGUAGE"
	EnvAPIKeyHash       = "API_KEY_HASH"
	EnvLogLevel         = "LOG_LEVEL"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageMongo    = "mongo"
	StoragePostgres = "postgres"
)

// Config is the resolved server configuration
type Config struct {
	Addr string

	// ResourcesPath is the directory film images are resolved against
	ResourcesPath string
	// FilmsFile is the catalog path, already joined with ResourcesPath
	FilmsFile string

	StorageType   string
	RedisURL      string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string

	Language   string
	APIKeyHash string
	LogLevel   slog.Level

	Game game.Config
}

// LookupFunc matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Load reads the given .env files (".env" when none are given), skipping
// files that do not exist, then resolves the config. Process environment
// variables take precedence over file values.
func Load(files ...string) (*Config, error) {
	fileVars, err := readDotenv(files)
	if err != nil {
		return nil, err
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

func readDotenv(files []string) (map[string]string, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	vars := make(map[string]string)
	for _, file := range files {
		read, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range read {
			if _, seen := vars[k]; !seen {
				vars[k] = v
			}
		}
	}
	return vars, nil
}

// FromLookup resolves the config from a variable source
func FromLookup(lookup LookupFunc) (*Config, error) {
	env := reader{lookup: lookup}

	cfg := &Config{
		Addr:          env.str(EnvAddr, ":8080"),
		ResourcesPath: env.str(EnvResourcesPath, "res"),
		StorageType:   strings.ToLower(env.str(EnvStorageType, StorageMemory)),
		RedisURL:      env.str(EnvRedisURL, ""),
		MongoURI:      env.str(EnvMongoURI, ""),
		MongoDatabase: env.str(EnvMongoDatabase, "guessfilm"),
		PostgresURL:   env.str(EnvPostgresURL, ""),
		Language:      strings.ToLower(env.str(EnvLanguage, lexicon.English)),
		APIKeyHash:    env.str(EnvAPIKeyHash, ""),
		Game:          game.DefaultConfig(),
	}

	films := env.required(EnvFilmsFilePath)
	if films != "" && !filepath.IsAbs(films) {
		films = filepath.Join(cfg.ResourcesPath, films)
	}
	cfg.FilmsFile = films

	cfg.Game.MaxAttempts = env.number(EnvNumberOfAttempts, cfg.Game.MaxAttempts)
	cfg.Game.WriteThrough = env.flag(EnvWriteThrough, cfg.Game.WriteThrough)
	cfg.Game.FlushInterval = env.duration(EnvFlushInterval, cfg.Game.FlushInterval)
	cfg.LogLevel = env.level(EnvLogLevel, slog.LevelInfo)

	switch cfg.StorageType {
	case StorageMemory:
	case StorageRedis:
		env.required(EnvRedisURL)
	case StorageMongo:
		env.required(EnvMongoURI)
	case StoragePostgres:
		env.required(EnvPostgresURL)
	default:
		env.fail(fmt.Errorf("%w: %s must be one of memory, redis, mongo, postgres, got %q",
			ErrInvalidVariable, EnvStorageType, cfg.StorageType))
	}

	if _, err := lexicon.For(cfg.Language); err != nil {
		env.fail(fmt.Errorf("%w: %s: %w", ErrInvalidVariable, EnvLanguage, err))
	}

	if env.err != nil {
		return nil, env.err
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// reader collects the first error while reading variables
type reader struct {
	lookup LookupFunc
	err    error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) str(key, def string) string {
	if v, ok := r.lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *reader) required(key string) string {
	v := r.str(key, "")
	if v == "" {
		r.fail(fmt.Errorf("%w: %s", ErrMissingVariable, key))
	}
	return v
}

func (r *reader) number(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidVariable, key, raw))
		return def
	}
	return n
}

func (r *reader) flag(key string, def bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidVariable, key, raw))
		return def
	}
	return b
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidVariable, key, raw))
		return def
	}
	return d
}

func (r *reader) level(key string, def slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		r.fail(fmt.Errorf("%w: %s=%q is not a log level", ErrInvalidVariable, key, raw))
		return def
	}
	return lvl
}
