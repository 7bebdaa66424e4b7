package database

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"propscout/server/internal/models"
)

// ErrPropertyNotFound is returned when a property id has no stored record.
var ErrPropertyNotFound = errors.New("property not found")

// Database is the SQLite-backed store for property records. Analysis
// results are computed on demand and never persisted.
type Database struct {
	db *gorm.DB
}

// NewDatabase opens (or creates) the SQLite database at the given path.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// RunMigrations creates or updates the properties table.
func (d *Database) RunMigrations() error {
	return d.db.AutoMigrate(&models.Property{})
}

// Transaction runs fn inside a database transaction.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.db.Transaction(fn)
}

// UpsertProperties inserts a batch of properties, replacing existing rows
// with the same property id.
func UpsertProperties(tx *gorm.DB, batch []*models.Property) error {
	if len(batch) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "property_id"}},
		UpdateAll: true,
	}).Create(batch).Error
}

// GetAllProperties returns stored properties, optionally filtered by city.
func (d *Database) GetAllProperties(city string) ([]*models.Property, error) {
	var properties []*models.Property
	query := d.db.Order("property_id")
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if err := query.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	return properties, nil
}

// GetProperty returns the stored property with the given id.
func (d *Database) GetProperty(id string) (*models.Property, error) {
	var property models.Property
	err := d.db.First(&property, "property_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query property %q: %w", id, err)
	}
	return &property, nil
}

// CountProperties returns the number of stored properties.
func (d *Database) CountProperties() (int64, error) {
	var count int64
	if err := d.db.Model(&models.Property{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DB exposes the underlying gorm handle for transactional callers.
func (d *Database) DB() *gorm.DB {
	return d.db
}
