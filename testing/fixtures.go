package testing

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestFixtures provides helper functions for creating test data
type TestFixtures struct {
	db *gorm.DB
}

// NewTestFixtures creates a new test fixtures helper
func NewTestFixtures(db *gorm.DB) *TestFixtures {
	return &TestFixtures{db: db}
}

// TestPassword is the plain-text password behind every fixture account hash
const TestPassword = "TestPass123!"

// CreateTestUser creates an account with the given role and a bcrypt hash of TestPassword
func (f *TestFixtures) CreateTestUser(username string, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash test password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    utils.UTCNow(),
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateActiveVisitor creates a visitor record that is still on the premises
func (f *TestFixtures) CreateActiveVisitor(nationalID string) (*models.Visitor, error) {
	visitor := &models.Visitor{
		NationalID:     nationalID,
		FirstName:      "Ayşe",
		LastName:       "Yılmaz",
		BirthYear:      1985,
		ReasonForVisit: "Toplantı",
		EntryTime:      utils.UTCNow(),
		IsActive:       true,
	}

	if err := f.db.Create(visitor).Error; err != nil {
		return nil, fmt.Errorf("failed to create test visitor: %w", err)
	}

	return visitor, nil
}

// CreatePastVisitor creates a checked-out visitor record whose visit lasted
// durationMinutes and ended exitedAgo before now
func (f *TestFixtures) CreatePastVisitor(nationalID string, durationMinutes int, exitedAgo time.Duration) (*models.Visitor, error) {
	exitTime := utils.UTCNow().Add(-exitedAgo)
	entryTime := exitTime.Add(-time.Duration(durationMinutes) * time.Minute)

	visitor := &models.Visitor{
		NationalID:      nationalID,
		FirstName:       "Mehmet",
		LastName:        "Demir",
		BirthYear:       1990,
		ReasonForVisit:  "Teslimat",
		EntryTime:       entryTime,
		ExitTime:        &exitTime,
		DurationMinutes: &durationMinutes,
		IsActive:        false,
	}

	if err := f.db.Create(visitor).Error; err != nil {
		return nil, fmt.Errorf("failed to create test visitor: %w", err)
	}

	return visitor, nil
}

// SeedSettings writes the given key/value pairs into the settings table
func (f *TestFixtures) SeedSettings(values map[string]string) error {
	for key, value := range values {
		setting := &models.Setting{Key: key, Value: value}
		if err := f.db.Create(setting).Error; err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}
	return nil
}

// RandomNationalID returns an 11-digit numeric string suitable for tc_kimlik
func RandomNationalID() string {
	digits := make([]byte, utils.NationalIDLength)
	digits[0] = byte('1' + rand.Intn(9))
	for i := 1; i < len(digits); i++ {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
