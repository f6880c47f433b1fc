package store

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/config"
	"github.com/matzehuels/flowboard/pkg/errors"
)

// Open builds the backend selected by cfg.Backend. An empty backend means
// the file store; an empty file store dir means [config.DefaultStoreDir].
func Open(ctx context.Context, cfg config.Store, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Default()
	}

	switch cfg.Backend {
	case config.BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			dir = config.DefaultStoreDir()
		}
		logger.Debug("opening store", "backend", config.BackendFile, "dir", dir)
		s, err := NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendMemory:
		logger.Debug("opening store", "backend", config.BackendMemory)
		return NewMemoryStore(), nil

	case config.BackendRedis:
		logger.Debug("opening store", "backend", config.BackendRedis, "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendMongo:
		database := cfg.MongoDatabase
		if database == "" {
			database = "flowboard"
		}
		logger.Debug("opening store", "backend", config.BackendMongo, "database", database)
		s, err := NewMongoStore(ctx, cfg.MongoURI, database)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "flowboard.db"
		}
		if path != ":memory:" {
			path = filepath.Clean(path)
		}
		logger.Debug("opening store", "backend", config.BackendSQLite, "path", path)
		s, err := NewSQLiteStore(ctx, path)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q", cfg.Backend)
	}
}
