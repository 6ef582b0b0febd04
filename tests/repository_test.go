package tests

import (
	"context"
	"testing"
	"time"

	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	testingutil "github.com/front-desk/visitor-register/testing"
	"github.com/front-desk/visitor-register/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestVisitorRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		visitorRepo := repository.NewVisitorRepository(testDB.DB)
		ctx := context.Background()

		t.Run("ActiveByNationalID", func(t *testing.T) {
			created, err := fixtures.CreateActiveVisitor("11111111111")
			require.NoError(t, err)

			found, err := visitorRepo.ActiveByNationalID(ctx, "11111111111")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, created.ID, found.ID)

			missing, err := visitorRepo.ActiveByNationalID(ctx, "99999999999")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("ActiveByNationalIDIgnoresPastVisits", func(t *testing.T) {
			_, err := fixtures.CreatePastVisitor("22222222222", 30, time.Hour)
			require.NoError(t, err)

			found, err := visitorRepo.ActiveByNationalID(ctx, "22222222222")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("DatabaseRejectsSecondActiveVisit", func(t *testing.T) {
			// The partial unique index backstops the application-level check
			duplicate := &models.Visitor{
				NationalID:     "11111111111",
				FirstName:      "Kopya",
				LastName:       "Kayıt",
				BirthYear:      1990,
				ReasonForVisit: "Test",
				EntryTime:      utils.UTCNow(),
				IsActive:       true,
			}
			err := testDB.DB.Create(duplicate).Error
			require.Error(t, err)
			assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
		})

		t.Run("CheckoutWritesExitAndDuration", func(t *testing.T) {
			visitor, err := fixtures.CreateActiveVisitor("33333333333")
			require.NoError(t, err)

			exitTime := utils.UTCNow()
			err = visitorRepo.Checkout(ctx, visitor.ID, exitTime, 17)
			require.NoError(t, err)

			reloaded, err := visitorRepo.ByID(ctx, visitor.ID)
			require.NoError(t, err)
			require.NotNil(t, reloaded)
			assert.False(t, reloaded.IsActive)
			require.NotNil(t, reloaded.ExitTime)
			require.NotNil(t, reloaded.DurationMinutes)
			assert.Equal(t, 17, *reloaded.DurationMinutes)
			require.NotNil(t, reloaded.VisitDuration())
			assert.Equal(t, "17 dakika", *reloaded.VisitDuration())
		})

		t.Run("AverageDurationMinutes", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())

			avg, err := visitorRepo.AverageDurationMinutes(ctx)
			require.NoError(t, err)
			assert.Equal(t, 0, avg)

			_, err = fixtures.CreatePastVisitor("44444444444", 20, time.Hour)
			require.NoError(t, err)
			_, err = fixtures.CreatePastVisitor("55555555555", 41, time.Hour)
			require.NoError(t, err)
			_, err = fixtures.CreateActiveVisitor("66666666666")
			require.NoError(t, err)

			avg, err = visitorRepo.AverageDurationMinutes(ctx)
			require.NoError(t, err)
			// AVG(20, 41) = 30.5, rounded half away from zero
			assert.Equal(t, 31, avg)
		})

		t.Run("CountEnteredBetween", func(t *testing.T) {
			now := utils.UTCNow()

			count, err := visitorRepo.CountEnteredBetween(ctx, now.Add(-10*time.Minute), now.Add(time.Minute))
			require.NoError(t, err)
			// Only the active fixture entered within the window
			assert.Equal(t, int64(1), count)

			count, err = visitorRepo.CountEnteredBetween(ctx, now.Add(time.Hour), now.Add(2*time.Hour))
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestUserRepository(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		ctx := context.Background()

		_, err := fixtures.CreateTestUser("admin", models.UserRoleAdmin)
		require.NoError(t, err)
		_, err = fixtures.CreateTestUser("frontdesk", models.UserRoleStaff)
		require.NoError(t, err)
		_, err = fixtures.CreateTestUser("reception", models.UserRoleStaff)
		require.NoError(t, err)

		t.Run("ByUsername", func(t *testing.T) {
			user, err := userRepo.ByUsername(ctx, "admin")
			require.NoError(t, err)
			require.NotNil(t, user)
			assert.Equal(t, models.UserRoleAdmin, user.Role)

			missing, err := userRepo.ByUsername(ctx, "nobody")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})

		t.Run("UsernameSearchIsCaseInsensitive", func(t *testing.T) {
			search := "FRONT"
			users, err := userRepo.ByFilter(ctx, models.UserFilter{UsernameSearch: &search}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, users, 1)
			assert.Equal(t, "frontdesk", users[0].Username)
		})

		t.Run("CountByRole", func(t *testing.T) {
			staff := models.UserRoleStaff
			count, err := userRepo.Count(ctx, models.UserFilter{Role: &staff})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)
		})

		t.Run("ExistsByRole", func(t *testing.T) {
			admin := models.UserRoleAdmin
			exists, err := userRepo.Exists(ctx, models.UserFilter{Role: &admin})
			require.NoError(t, err)
			assert.True(t, exists)
		})

		return nil
	})
	require.NoError(t, err)
}
