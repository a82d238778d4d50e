package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SQLiteConfig SQLite 配置（本地开发与测试使用）
type SQLiteConfig struct {
	ServiceName string
	// Path is a file path, or empty for a private in-memory database.
	Path     string
	LogLevel string
}

// InitSQLite opens a SQLite database with foreign keys enforced, so that
// ON DELETE CASCADE behaves the same way it does on Postgres.
func InitSQLite(config *SQLiteConfig) (*gorm.DB, error) {
	if config == nil {
		return nil, fmt.Errorf("sqlite config is nil")
	}
	if config.LogLevel == "" {
		config.LogLevel = "warn"
	}

	db, err := gorm.Open(sqlite.Open(SQLiteDSN(config.Path)), &gorm.Config{
		Logger:         NewLogger(config.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	// SQLite serialises writers; a single connection also keeps an in-memory
	// database alive and shared for the lifetime of the pool.
	sqlDB.SetMaxOpenConns(1)

	log.Printf("[%s] sqlite opened (%s)", serviceName(config.ServiceName), displayPath(config.Path))
	return db, nil
}

// SQLiteDSN builds the connection string, appending the foreign_keys pragma.
func SQLiteDSN(path string) string {
	if path == "" {
		path = "file::memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

func displayPath(path string) string {
	if path == "" {
		return "memory"
	}
	return path
}
