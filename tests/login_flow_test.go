package tests

import (
	"context"
	"testing"
	"time"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/app/services"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	testingutil "github.com/front-desk/visitor-register/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) services.TokenService {
	tokenService, err := services.NewTokenService(
		1*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"test-secret-key-that-is-long-enough-123",
	)
	require.NoError(t, err)
	return tokenService
}

func TestLogin(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB.DB)
		userRepo := repository.NewUserRepository(testDB.DB)
		tokenService := newTestTokenService(t)
		authFlow := businessflow.NewAuthFlow(userRepo, tokenService)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent")

		user, err := fixtures.CreateTestUser("frontdesk", models.UserRoleStaff)
		require.NoError(t, err)

		t.Run("SuccessfulLogin", func(t *testing.T) {
			req := &dto.LoginRequest{
				Username: "frontdesk",
				Password: testingutil.TestPassword,
			}

			result, err := authFlow.Login(context.Background(), req, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.NotEmpty(t, result.AccessToken)
			assert.Equal(t, user.ID.String(), result.User.ID)
			assert.Equal(t, "frontdesk", result.User.Username)
			assert.Equal(t, "staff", result.User.Role)

			// The issued token carries the account identity
			claims, err := tokenService.ValidateToken(result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, user.ID.String(), claims.UserID)
			assert.Equal(t, "frontdesk", claims.Username)
			assert.Equal(t, "staff", claims.Role)
		})

		t.Run("WrongPassword", func(t *testing.T) {
			req := &dto.LoginRequest{
				Username: "frontdesk",
				Password: "WrongPass123!",
			}

			result, err := authFlow.Login(context.Background(), req, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsInvalidCredentials(err))
		})

		t.Run("UnknownUsername", func(t *testing.T) {
			req := &dto.LoginRequest{
				Username: "nobody",
				Password: testingutil.TestPassword,
			}

			result, err := authFlow.Login(context.Background(), req, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsInvalidCredentials(err))
		})

		t.Run("UnknownUsernameAndWrongPasswordAreIndistinguishable", func(t *testing.T) {
			_, unknownErr := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "nobody",
				Password: "whatever1",
			}, metadata)
			_, wrongPassErr := authFlow.Login(context.Background(), &dto.LoginRequest{
				Username: "frontdesk",
				Password: "whatever1",
			}, metadata)

			require.Error(t, unknownErr)
			require.Error(t, wrongPassErr)
			assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
		})

		return nil
	})
	require.NoError(t, err)
}
