// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/front-desk/visitor-register/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepositoryImpl implements SettingRepository interface
type SettingRepositoryImpl struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &SettingRepositoryImpl{db: db}
}

func (r *SettingRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return r.db
}

// All returns every settings row as a key/value map.
func (r *SettingRepositoryImpl) All(ctx context.Context) (map[string]string, error) {
	db := r.getDB(ctx)

	var rows []models.Setting
	err := db.Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := make(map[string]string, len(rows))
	for _, row := range rows {
		settings[row.Key] = row.Value
	}

	return settings, nil
}

// Set upserts a single settings key.
func (r *SettingRepositoryImpl) Set(ctx context.Context, key, value string) error {
	db := r.getDB(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	return nil
}

// SeedDefaults inserts the given rows for keys that do not exist yet.
// Existing values are never overwritten.
func (r *SettingRepositoryImpl) SeedDefaults(ctx context.Context, defaults []models.Setting) error {
	if len(defaults) == 0 {
		return nil
	}

	db := r.getDB(ctx)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&defaults).Error
	if err != nil {
		return fmt.Errorf("failed to seed default settings: %w", err)
	}

	return nil
}
