package models

import (
	"time"

	"github.com/front-desk/visitor-register/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole is the access level of a register account.
type UserRole string

const (
	UserRoleAdmin UserRole = utils.RoleAdmin
	UserRoleStaff UserRole = utils.RoleStaff
)

// Valid checks if the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleStaff:
		return true
	default:
		return false
	}
}

// User is a staff or admin account that can sign in to the register.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:255;not null;uniqueIndex:uk_users_username" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;index:idx_users_role" json:"role"`
	CreatedAt    time.Time `gorm:"not null;index:idx_users_created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate ensures ID and creation time are set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = utils.UTCNow()
	}
	return nil
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID             *uuid.UUID
	Username       *string
	UsernameSearch *string
	Role           *UserRole
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
}
