package db

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize sets up the local database connection with WAL mode for concurrency
func Initialize(dbPath string, environment string) error {
	var err error

	// Enable WAL mode for better concurrency support
	dsn := dbPath + "?_journal_mode=WAL"

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(environment)),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// InitializeRemote connects to a Turso/libsql database instead of a local
// file. The libsql driver speaks the remote protocol; its connection is handed
// to the sqlite dialector so the rest of the app keeps the same gorm surface.
func InitializeRemote(databaseURL, authToken, environment string) error {
	dsn := databaseURL
	if authToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", databaseURL, authToken)
	}

	sqlDB, err := sql.Open("libsql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open libsql connection: %w", err)
	}

	DB, err = gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(environment)),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to remote database: %w", err)
	}

	log.Println("Database connection established (Turso remote)")
	return nil
}

func gormLogLevel(environment string) logger.LogLevel {
	if environment == "production" {
		return logger.Warn
	}
	return logger.Info
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Ping reports whether the underlying connection is still reachable.
func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Ping()
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
