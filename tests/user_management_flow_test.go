package tests

import (
	"context"
	"testing"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	testingutil "github.com/front-desk/visitor-register/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserManagement(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		userFlow := businessflow.NewUserManagementFlow(userRepo, testDB.DB)

		admin, err := fixtures.CreateTestUser("admin", models.UserRoleAdmin)
		require.NoError(t, err)
		actor := businessflow.AuthenticatedUser{
			ID:       admin.ID.String(),
			Username: admin.Username,
			Role:     string(admin.Role),
		}

		t.Run("CreateUser", func(t *testing.T) {
			req := &dto.CreateUserRequest{
				Username: "frontdesk",
				Password: "SecurePass123!",
				Role:     "staff",
			}

			result, err := userFlow.Create(context.Background(), req, actor)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, "frontdesk", result.Username)
			assert.Equal(t, "staff", result.Role)
			assert.NotEmpty(t, result.ID)

			// The password is stored hashed, not in clear text
			stored, err := userRepo.ByUsername(context.Background(), "frontdesk")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.NotEqual(t, "SecurePass123!", stored.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("SecurePass123!")))
		})

		t.Run("CreateDuplicateUsernameFails", func(t *testing.T) {
			req := &dto.CreateUserRequest{
				Username: "frontdesk",
				Password: "AnotherPass1!",
				Role:     "staff",
			}

			result, err := userFlow.Create(context.Background(), req, actor)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))
		})

		t.Run("ListWithSearchAndRoleFilter", func(t *testing.T) {
			result, err := userFlow.List(context.Background(), &dto.ListUsersQuery{
				Search: "front",
				Role:   "staff",
				Page:   1,
				Limit:  10,
			})
			require.NoError(t, err)
			require.Len(t, result.Users, 1)
			assert.Equal(t, "frontdesk", result.Users[0].Username)
			assert.Equal(t, int64(1), result.Pagination.TotalUsers)
			assert.Equal(t, 1, result.Pagination.TotalPages)
			assert.Equal(t, 1, result.Pagination.CurrentPage)
			assert.Equal(t, 10, result.Pagination.PerPage)
		})

		t.Run("ListClampsPageAndLimit", func(t *testing.T) {
			result, err := userFlow.List(context.Background(), &dto.ListUsersQuery{
				Page:  -3,
				Limit: 0,
			})
			require.NoError(t, err)
			assert.Equal(t, 1, result.Pagination.CurrentPage)
			assert.Equal(t, 10, result.Pagination.PerPage)
			assert.Equal(t, int64(2), result.Pagination.TotalUsers)
		})

		t.Run("PartialUpdate", func(t *testing.T) {
			stored, err := userRepo.ByUsername(context.Background(), "frontdesk")
			require.NoError(t, err)
			require.NotNil(t, stored)

			newPassword := "ChangedPass1!"
			err = userFlow.Update(context.Background(), stored.ID, &dto.UpdateUserRequest{
				Password: &newPassword,
			}, actor)
			require.NoError(t, err)

			// Username and role are untouched, the password hash changed
			updated, err := userRepo.ByUsername(context.Background(), "frontdesk")
			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.Equal(t, models.UserRoleStaff, updated.Role)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)))
		})

		t.Run("UpdateWithNoFieldsFails", func(t *testing.T) {
			stored, err := userRepo.ByUsername(context.Background(), "frontdesk")
			require.NoError(t, err)

			err = userFlow.Update(context.Background(), stored.ID, &dto.UpdateUserRequest{}, actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsNoFieldsToUpdate(err))
		})

		t.Run("UpdateUnknownUserFails", func(t *testing.T) {
			username := "ghost"
			err := userFlow.Update(context.Background(), uuid.New(), &dto.UpdateUserRequest{
				Username: &username,
			}, actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("AdminCannotDemoteSelf", func(t *testing.T) {
			staffRole := "staff"
			err := userFlow.Update(context.Background(), admin.ID, &dto.UpdateUserRequest{
				Role: &staffRole,
			}, actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsSelfDemoteForbidden(err))
		})

		t.Run("AdminCannotDeleteSelf", func(t *testing.T) {
			err := userFlow.Delete(context.Background(), admin.ID, actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsSelfDeleteForbidden(err))
		})

		t.Run("DeleteUser", func(t *testing.T) {
			stored, err := userRepo.ByUsername(context.Background(), "frontdesk")
			require.NoError(t, err)
			require.NotNil(t, stored)

			err = userFlow.Delete(context.Background(), stored.ID, actor)
			require.NoError(t, err)

			gone, err := userRepo.ByUsername(context.Background(), "frontdesk")
			require.NoError(t, err)
			assert.Nil(t, gone)
		})

		t.Run("DeleteUnknownUserFails", func(t *testing.T) {
			err := userFlow.Delete(context.Background(), uuid.New(), actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

// staleReadUserRepo reports no account for any username, imitating a create or
// rename whose uniqueness read ran before a concurrent write committed.
type staleReadUserRepo struct {
	repository.UserRepository
}

func (r staleReadUserRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func TestUserConflictFromUniqueIndex(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		userFlow := businessflow.NewUserManagementFlow(staleReadUserRepo{userRepo}, testDB.DB)

		admin, err := fixtures.CreateTestUser("admin", models.UserRoleAdmin)
		require.NoError(t, err)
		actor := businessflow.AuthenticatedUser{
			ID:       admin.ID.String(),
			Username: admin.Username,
			Role:     string(admin.Role),
		}

		taken, err := fixtures.CreateTestUser("frontdesk", models.UserRoleStaff)
		require.NoError(t, err)
		other, err := fixtures.CreateTestUser("reception", models.UserRoleStaff)
		require.NoError(t, err)

		t.Run("CreateSurfacesConflict", func(t *testing.T) {
			result, err := userFlow.Create(context.Background(), &dto.CreateUserRequest{
				Username: taken.Username,
				Password: "SecurePass123!",
				Role:     "staff",
			}, actor)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))
		})

		t.Run("RenameSurfacesConflict", func(t *testing.T) {
			err := userFlow.Update(context.Background(), other.ID, &dto.UpdateUserRequest{
				Username: &taken.Username,
			}, actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsUsernameAlreadyExists(err))
		})

		return nil
	})
	require.NoError(t, err)
}
