package config

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "todo-api.com/todo-api/internal/models"
)

// SQLiteDriverName is the sqlite3 driver with unicode_lower registered on
// every connection. SQLite's own LOWER only folds ASCII.
const SQLiteDriverName = "sqlite3_todo"

var registerDriver sync.Once

// OpenSQLite returns a gorm dialector for dsn on SQLiteDriverName.
func OpenSQLite(dsn string) gorm.Dialector {
	registerDriver.Do(func() {
		sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: dsn})
}

// NewDatabaseClient opens the sqlite store, creating folder first when set,
// and migrates the schema.
func NewDatabaseClient(folder, dsn string) (*gorm.DB, error) {
	if folder != "" {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return nil, fmt.Errorf("create database folder: %w", err)
		}
	}

	db, err := gorm.Open(OpenSQLite(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Todo{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
