package database

import (
	"log"
	"medibook-service/internal/app/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a single connection sqlite database. Writers are
// serialised by the pool so the transactor keeps its guarantees.
func NewSQLiteDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), NewGormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// NewDatabase picks sqlite when it is enabled and postgres otherwise.
func NewDatabase(driverConfig *config.DriverConfig) *gorm.DB {
	if !driverConfig.SQLite.Enabled {
		return NewPostgresDB(driverConfig)
	}

	db, err := NewSQLiteDB(driverConfig.SQLite.Path)
	if err != nil {
		log.Fatalf("Failed to open sqlite database %s: %s", driverConfig.SQLite.Path, err.Error())
	}
	log.Printf("Successfully opened sqlite database %s", driverConfig.SQLite.Path)
	return db
}
