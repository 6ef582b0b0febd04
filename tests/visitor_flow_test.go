package tests

import (
	"context"
	"testing"
	"time"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	testingutil "github.com/front-desk/visitor-register/testing"
	"github.com/front-desk/visitor-register/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitorIntake(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		visitorRepo := repository.NewVisitorRepository(testDB.DB)
		visitorFlow := businessflow.NewVisitorFlow(visitorRepo, testDB.DB, time.UTC)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("SuccessfulIntake", func(t *testing.T) {
			req := &dto.CreateVisitorRequest{
				NationalID:     "12345678901",
				FirstName:      "Ayşe",
				LastName:       "Yılmaz",
				BirthYear:      utils.ToPtr(1985),
				ReasonForVisit: "Toplantı",
			}

			result, err := visitorFlow.Intake(context.Background(), req, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "12345678901", result.NationalID)
			assert.Equal(t, "Ayşe", result.FirstName)
			assert.Equal(t, "Yılmaz", result.LastName)
			assert.Equal(t, 1985, result.BirthYear)
			assert.Equal(t, "Toplantı", result.ReasonForVisit)
			assert.True(t, result.IsActive)
			assert.Nil(t, result.ExitTime)
			assert.Nil(t, result.VisitDuration)
			assert.NotEmpty(t, result.EntryTime)

			// Verify the record was persisted
			id, err := uuid.Parse(result.ID)
			require.NoError(t, err)
			visitor, err := visitorRepo.ByID(context.Background(), id)
			require.NoError(t, err)
			require.NotNil(t, visitor)
			assert.True(t, visitor.IsActive)
			assert.Nil(t, visitor.DurationMinutes)
		})

		t.Run("RejectsSecondActiveVisitForSameNationalID", func(t *testing.T) {
			req := &dto.CreateVisitorRequest{
				NationalID:     "12345678901",
				FirstName:      "Ayşe",
				LastName:       "Yılmaz",
				BirthYear:      utils.ToPtr(1985),
				ReasonForVisit: "İkinci ziyaret",
			}

			result, err := visitorFlow.Intake(context.Background(), req, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsActiveVisitExists(err))
		})

		t.Run("AllowsNewVisitAfterCheckout", func(t *testing.T) {
			active, err := visitorRepo.ActiveByNationalID(context.Background(), "12345678901")
			require.NoError(t, err)
			require.NotNil(t, active)

			_, err = visitorFlow.Checkout(context.Background(), active.ID, metadata)
			require.NoError(t, err)

			req := &dto.CreateVisitorRequest{
				NationalID:     "12345678901",
				FirstName:      "Ayşe",
				LastName:       "Yılmaz",
				BirthYear:      utils.ToPtr(1985),
				ReasonForVisit: "Tekrar ziyaret",
			}
			result, err := visitorFlow.Intake(context.Background(), req, metadata)
			require.NoError(t, err)
			assert.True(t, result.IsActive)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestVisitorCheckout(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		visitorRepo := repository.NewVisitorRepository(testDB.DB)
		visitorFlow := businessflow.NewVisitorFlow(visitorRepo, testDB.DB, time.UTC)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		t.Run("SuccessfulCheckout", func(t *testing.T) {
			visitor, err := fixtures.CreateActiveVisitor("11111111111")
			require.NoError(t, err)

			result, err := visitorFlow.Checkout(context.Background(), visitor.ID, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.False(t, result.IsActive)
			require.NotNil(t, result.ExitTime)
			require.NotNil(t, result.VisitDuration)
			// The visit just started, so the rounded duration is zero
			assert.Equal(t, "0 dakika", *result.VisitDuration)
		})

		t.Run("SecondCheckoutFails", func(t *testing.T) {
			visitor, err := visitorRepo.ByFilter(context.Background(), models.VisitorFilter{
				NationalID: strPtr("11111111111"),
			}, "", 1, 0)
			require.NoError(t, err)
			require.Len(t, visitor, 1)

			result, err := visitorFlow.Checkout(context.Background(), visitor[0].ID, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsAlreadyCheckedOut(err))
		})

		t.Run("UnknownVisitorFails", func(t *testing.T) {
			result, err := visitorFlow.Checkout(context.Background(), uuid.New(), metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsVisitorNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestVisitorLists(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		visitorRepo := repository.NewVisitorRepository(testDB.DB)
		visitorFlow := businessflow.NewVisitorFlow(visitorRepo, testDB.DB, time.UTC)

		_, err := fixtures.CreateActiveVisitor("11111111111")
		require.NoError(t, err)
		_, err = fixtures.CreateActiveVisitor("22222222222")
		require.NoError(t, err)
		_, err = fixtures.CreatePastVisitor("33333333333", 45, 2*time.Hour)
		require.NoError(t, err)
		_, err = fixtures.CreatePastVisitor("44444444444", 10, 1*time.Hour)
		require.NoError(t, err)

		t.Run("ActiveListContainsOnlyActiveVisits", func(t *testing.T) {
			active, err := visitorFlow.ListActive(context.Background())
			require.NoError(t, err)
			require.Len(t, active, 2)
			for _, v := range active {
				assert.True(t, v.IsActive)
				assert.Nil(t, v.ExitTime)
				assert.Nil(t, v.VisitDuration)
			}
		})

		t.Run("PastListOrderedByExitTimeDescending", func(t *testing.T) {
			past, err := visitorFlow.ListPast(context.Background())
			require.NoError(t, err)
			require.Len(t, past, 2)
			// The visit that ended an hour ago comes before the two-hour-old one
			assert.Equal(t, "44444444444", past[0].NationalID)
			assert.Equal(t, "33333333333", past[1].NationalID)
			require.NotNil(t, past[0].VisitDuration)
			assert.Equal(t, "10 dakika", *past[0].VisitDuration)
			require.NotNil(t, past[1].VisitDuration)
			assert.Equal(t, "45 dakika", *past[1].VisitDuration)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestVisitorMetrics(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		visitorRepo := repository.NewVisitorRepository(testDB.DB)
		visitorFlow := businessflow.NewVisitorFlow(visitorRepo, testDB.DB, time.UTC)

		t.Run("EmptyRegister", func(t *testing.T) {
			metrics, err := visitorFlow.Metrics(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(0), metrics.VisitorsToday)
			assert.Equal(t, int64(0), metrics.ActiveVisitors)
			assert.Equal(t, 0, metrics.AverageVisitDurationMinutes)
		})

		t.Run("CountsAndAverage", func(t *testing.T) {
			_, err := fixtures.CreateActiveVisitor("11111111111")
			require.NoError(t, err)
			_, err = fixtures.CreatePastVisitor("22222222222", 30, 30*time.Minute)
			require.NoError(t, err)
			_, err = fixtures.CreatePastVisitor("33333333333", 60, 10*time.Minute)
			require.NoError(t, err)

			metrics, err := visitorFlow.Metrics(context.Background())
			require.NoError(t, err)
			assert.Equal(t, int64(1), metrics.ActiveVisitors)
			// Active visits have no duration and are excluded from the average
			assert.Equal(t, 45, metrics.AverageVisitDurationMinutes)

			// The active fixture entered just now, which is always today. The
			// past fixtures entered within the last ninety minutes and may
			// straddle midnight, so only bound the count.
			assert.GreaterOrEqual(t, metrics.VisitorsToday, int64(1))
			assert.LessOrEqual(t, metrics.VisitorsToday, int64(3))

			// The active count matches the active list
			active, err := visitorFlow.ListActive(context.Background())
			require.NoError(t, err)
			assert.Equal(t, metrics.ActiveVisitors, int64(len(active)))
		})

		return nil
	})
	require.NoError(t, err)
}

// staleReadVisitorRepo reports no active visit regardless of state, imitating
// an intake whose read ran before a concurrent intake for the same national ID
// committed.
type staleReadVisitorRepo struct {
	repository.VisitorRepository
}

func (r staleReadVisitorRepo) ActiveByNationalID(ctx context.Context, nationalID string) (*models.Visitor, error) {
	return nil, nil
}

func TestVisitorIntakeConflictFromUniqueIndex(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		visitorRepo := repository.NewVisitorRepository(testDB.DB)
		visitorFlow := businessflow.NewVisitorFlow(staleReadVisitorRepo{visitorRepo}, testDB.DB, time.UTC)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		_, err := fixtures.CreateActiveVisitor("12345678901")
		require.NoError(t, err)

		// The read misses, the insert hits the partial unique index, and the
		// flow still surfaces the conflict error instead of a generic failure
		result, err := visitorFlow.Intake(context.Background(), &dto.CreateVisitorRequest{
			NationalID:     "12345678901",
			FirstName:      "Ayşe",
			LastName:       "Yılmaz",
			BirthYear:      utils.ToPtr(1985),
			ReasonForVisit: "Toplantı",
		}, metadata)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, businessflow.IsActiveVisitExists(err))

		return nil
	})
	require.NoError(t, err)
}

func strPtr(s string) *string {
	return &s
}
