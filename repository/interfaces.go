// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/front-desk/visitor-register/models"
	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uuid.UUID) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// VisitorRepository defines operations for visitor records
type VisitorRepository interface {
	Repository[models.Visitor, models.VisitorFilter]
	ActiveByNationalID(ctx context.Context, nationalID string) (*models.Visitor, error)
	Checkout(ctx context.Context, id uuid.UUID, exitTime time.Time, durationMinutes int) error
	CountEnteredBetween(ctx context.Context, from, to time.Time) (int64, error)
	AverageDurationMinutes(ctx context.Context) (int, error)
}

// UserRepository defines operations for register accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingRepository defines operations for the settings key/value table
type SettingRepository interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	SeedDefaults(ctx context.Context, defaults []models.Setting) error
}
