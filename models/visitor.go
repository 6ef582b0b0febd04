// Package models contains domain entities and business models for the visitor register
package models

import (
	"fmt"
	"time"

	"github.com/front-desk/visitor-register/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visitor represents one check-in/check-out episode for a person.
// The duration of a finished visit is stored numerically in DurationMinutes;
// the textual "N dakika" form the kiosk UI shows is rendered on the read path.
type Visitor struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	NationalID     string    `gorm:"column:tc_kimlik;size:11;not null;index:idx_visitors_tc_kimlik" json:"tc_kimlik"`
	FirstName      string    `gorm:"size:255;not null" json:"first_name"`
	LastName       string    `gorm:"size:255;not null" json:"last_name"`
	BirthYear      int       `gorm:"not null" json:"birth_year"`
	ReasonForVisit string    `gorm:"type:text;not null" json:"reason_for_visit"`

	EntryTime       time.Time  `gorm:"not null;index:idx_visitors_entry_time" json:"entry_time"`
	ExitTime        *time.Time `gorm:"index:idx_visitors_exit_time" json:"exit_time"`
	DurationMinutes *int       `gorm:"column:duration_minutes" json:"-"`
	IsActive        bool       `gorm:"not null;index:idx_visitors_is_active" json:"is_active"`
}

func (Visitor) TableName() string {
	return "visitors"
}

// BeforeCreate ensures ID and entry time are set.
func (v *Visitor) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.EntryTime.IsZero() {
		v.EntryTime = utils.UTCNow()
	}
	return nil
}

// VisitDuration renders the stored duration in the register's textual form
// ("N dakika"), or nil while the visit is still active.
func (v *Visitor) VisitDuration() *string {
	if v.DurationMinutes == nil {
		return nil
	}
	s := FormatVisitDuration(*v.DurationMinutes)
	return &s
}

// FormatVisitDuration renders a minute count as the display string kept for
// compatibility with the historical visit_duration column format.
func FormatVisitDuration(minutes int) string {
	return fmt.Sprintf("%d %s", minutes, utils.DurationUnit)
}

// VisitorFilter represents filter criteria for visitor queries
type VisitorFilter struct {
	ID            *uuid.UUID
	NationalID    *string
	IsActive      *bool
	EnteredAfter  *time.Time
	EnteredBefore *time.Time
	ExitedAfter   *time.Time
	ExitedBefore  *time.Time
	HasDuration   *bool
}
