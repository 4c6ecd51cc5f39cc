package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the datastore named by a DATABASE_URL-style connection
// string. Supported schemes: sqlite:// (default), mysql://, postgres://.
// A bare path is treated as a sqlite file.
func Open(databaseURL string) (*gorm.DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database url cannot be empty")
	}

	dialector, err := dialectorFor(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return db, nil
}

// OpenSQLite opens a sqlite database at the given file path
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	return db, nil
}

// dialectorFor maps a connection string onto a gorm driver
func dialectorFor(databaseURL string) (gorm.Dialector, error) {
	scheme, rest, found := strings.Cut(databaseURL, "://")
	if !found {
		// No scheme, assume an embedded sqlite file path
		return sqlite.Open(databaseURL), nil
	}

	switch scheme {
	case "sqlite", "sqlite3":
		// sqlite:///site.db carries an empty authority before the path
		path := strings.TrimPrefix(rest, "/")
		if path == "" {
			return nil, fmt.Errorf("sqlite url %q has no file path", databaseURL)
		}
		return sqlite.Open(path), nil
	case "mysql":
		return mysql.Open(rest), nil
	case "postgres", "postgresql":
		return postgres.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}
