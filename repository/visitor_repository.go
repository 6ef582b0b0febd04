// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/front-desk/visitor-register/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitorRepositoryImpl implements VisitorRepository interface
type VisitorRepositoryImpl struct {
	*BaseRepository[models.Visitor, models.VisitorFilter]
}

// NewVisitorRepository creates a new visitor repository
func NewVisitorRepository(db *gorm.DB) VisitorRepository {
	return &VisitorRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Visitor, models.VisitorFilter](db),
	}
}

// ActiveByNationalID retrieves the active visit for a TC identity number, if any.
// At most one such row can exist; the partial unique index on
// (tc_kimlik) WHERE is_active backstops that invariant.
func (r *VisitorRepositoryImpl) ActiveByNationalID(ctx context.Context, nationalID string) (*models.Visitor, error) {
	active := true
	visitors, err := r.ByFilter(ctx, models.VisitorFilter{NationalID: &nationalID, IsActive: &active}, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(visitors) == 0 {
		return nil, nil
	}

	return visitors[0], nil
}

// Checkout finalizes a visit: records the exit time and duration and clears the
// active flag. The caller is responsible for running this inside a transaction
// together with the preceding read.
func (r *VisitorRepositoryImpl) Checkout(ctx context.Context, id uuid.UUID, exitTime time.Time, durationMinutes int) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Model(&models.Visitor{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":        false,
			"exit_time":        exitTime,
			"duration_minutes": durationMinutes,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to checkout visitor %s: %w", id, err)
	}

	return nil
}

// CountEnteredBetween counts visitors whose entry time falls in [from, to).
func (r *VisitorRepositoryImpl) CountEnteredBetween(ctx context.Context, from, to time.Time) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	err := db.Model(&models.Visitor{}).
		Where("entry_time >= ? AND entry_time < ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count visitors by entry time: %w", err)
	}

	return count, nil
}

// AverageDurationMinutes returns the rounded average visit duration over all
// finished visits, or 0 when no finished visit has a recorded duration.
func (r *VisitorRepositoryImpl) AverageDurationMinutes(ctx context.Context) (int, error) {
	db := r.getDB(ctx)

	var avg *float64
	err := db.Model(&models.Visitor{}).
		Where("is_active = ? AND duration_minutes IS NOT NULL", false).
		Select("AVG(duration_minutes)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to average visit durations: %w", err)
	}

	if avg == nil {
		return 0, nil
	}

	return int(math.Round(*avg)), nil
}

// applyFilter applies filter criteria to a GORM query
func (r *VisitorRepositoryImpl) applyFilter(query *gorm.DB, filter models.VisitorFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.NationalID != nil {
		query = query.Where("tc_kimlik = ?", *filter.NationalID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.EnteredAfter != nil {
		query = query.Where("entry_time >= ?", *filter.EnteredAfter)
	}
	if filter.EnteredBefore != nil {
		query = query.Where("entry_time < ?", *filter.EnteredBefore)
	}
	if filter.ExitedAfter != nil {
		query = query.Where("exit_time >= ?", *filter.ExitedAfter)
	}
	if filter.ExitedBefore != nil {
		query = query.Where("exit_time < ?", *filter.ExitedBefore)
	}
	if filter.HasDuration != nil {
		if *filter.HasDuration {
			query = query.Where("duration_minutes IS NOT NULL")
		} else {
			query = query.Where("duration_minutes IS NULL")
		}
	}
	return query
}

// ByFilter retrieves visitors based on filter criteria
func (r *VisitorRepositoryImpl) ByFilter(ctx context.Context, filter models.VisitorFilter, orderBy string, limit, offset int) ([]*models.Visitor, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Visitor{})

	// Apply filters
	query = r.applyFilter(query, filter)

	// Apply ordering (default to entry_time DESC)
	if orderBy == "" {
		orderBy = "entry_time DESC"
	}
	query = query.Order(orderBy)

	// Apply pagination
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var visitors []*models.Visitor
	err := query.Find(&visitors).Error
	if err != nil {
		return nil, err
	}

	return visitors, nil
}

// Count returns the number of visitors matching the filter
func (r *VisitorRepositoryImpl) Count(ctx context.Context, filter models.VisitorFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Visitor{})

	// Apply filters
	query = r.applyFilter(query, filter)

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any visitor matching the filter exists
func (r *VisitorRepositoryImpl) Exists(ctx context.Context, filter models.VisitorFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
