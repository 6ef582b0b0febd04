package tests

import (
	"context"
	"testing"

	"github.com/front-desk/visitor-register/app/dto"
	businessflow "github.com/front-desk/visitor-register/business_flow"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	testingutil "github.com/front-desk/visitor-register/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		settingRepo := repository.NewSettingRepository(testDB.DB)
		// Cache disabled; the flow reads and writes through the database
		settingsFlow := businessflow.NewSettingsFlow(settingRepo, nil, nil, testDB.DB)
		actor := businessflow.AuthenticatedUser{ID: "test", Username: "admin", Role: "admin"}

		t.Run("SeedDefaultsThenList", func(t *testing.T) {
			err := settingRepo.SeedDefaults(context.Background(), models.DefaultSettings())
			require.NoError(t, err)

			settings, err := settingsFlow.List(context.Background())
			require.NoError(t, err)
			assert.NotEmpty(t, settings[models.SettingKVKKText])
			assert.NotEmpty(t, settings[models.SettingAydinlatmaText])
		})

		t.Run("SeedDefaultsDoesNotOverwrite", func(t *testing.T) {
			err := settingRepo.Set(context.Background(), models.SettingKVKKText, "custom text")
			require.NoError(t, err)

			err = settingRepo.SeedDefaults(context.Background(), models.DefaultSettings())
			require.NoError(t, err)

			settings, err := settingRepo.All(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "custom text", settings[models.SettingKVKKText])
		})

		t.Run("UpdateUpsertsAllProvidedKeys", func(t *testing.T) {
			redirect := "https://example.com/done"
			err := settingsFlow.Update(context.Background(), &dto.UpdateSettingsRequest{
				KVKKText:       "new kvkk",
				AydinlatmaText: "new aydinlatma",
				RedirectURL:    &redirect,
			}, actor)
			require.NoError(t, err)

			settings, err := settingsFlow.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "new kvkk", settings[models.SettingKVKKText])
			assert.Equal(t, "new aydinlatma", settings[models.SettingAydinlatmaText])
			assert.Equal(t, "https://example.com/done", settings[models.SettingRedirectURL])
		})

		t.Run("UpdateWithoutDisclosureTextsFails", func(t *testing.T) {
			err := settingsFlow.Update(context.Background(), &dto.UpdateSettingsRequest{
				KVKKText:       "only one",
				AydinlatmaText: "",
			}, actor)
			require.Error(t, err)
			assert.True(t, businessflow.IsDisclosureTextsRequired(err))
		})

		return nil
	})
	require.NoError(t, err)
}
