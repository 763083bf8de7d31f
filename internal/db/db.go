package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite stores documents in a local sqlite file.
	DriverSQLite = "sqlite"
	// DriverPostgres stores documents in PostgreSQL.
	DriverPostgres = "postgres"

	defaultSQLitePath = "sitecms.db"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// Init opens the store for driver/dsn, runs migrations and publishes the
// handle as DB. An empty sqlite dsn falls back to sitecms.db.
func Init(driver, dsn string) error {
	gdb, err := Open(driver, dsn)
	if err != nil {
		return err
	}

	if err := Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	DB = gdb
	return nil
}

// Open creates a gorm handle without migrating.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(dsn)
		if path == "" {
			path = defaultSQLitePath
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(path)
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("postgres dsn is required")
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return gdb, nil
}

// Models lists every persisted document type, one table each.
func Models() []any {
	return []any{
		&User{},
		&CustomPage{},
		&SiteDocument{},
		&Product{},
		&ContactSubmission{},
		&Blog{},
	}
}

// Migrate creates or updates the tables behind Models.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(Models()...)
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
