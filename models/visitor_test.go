package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVisitDuration(t *testing.T) {
	assert.Equal(t, "0 dakika", FormatVisitDuration(0))
	assert.Equal(t, "1 dakika", FormatVisitDuration(1))
	assert.Equal(t, "45 dakika", FormatVisitDuration(45))
	assert.Equal(t, "1440 dakika", FormatVisitDuration(1440))
}

func TestVisitDuration(t *testing.T) {
	t.Run("ActiveVisitHasNoDuration", func(t *testing.T) {
		visitor := Visitor{IsActive: true}
		assert.Nil(t, visitor.VisitDuration())
	})

	t.Run("FinishedVisitRendersDuration", func(t *testing.T) {
		minutes := 37
		visitor := Visitor{DurationMinutes: &minutes}
		rendered := visitor.VisitDuration()
		require.NotNil(t, rendered)
		assert.Equal(t, "37 dakika", *rendered)
	})
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, UserRoleAdmin.Valid())
	assert.True(t, UserRoleStaff.Valid())
	assert.False(t, UserRole("superuser").Valid())
	assert.False(t, UserRole("").Valid())
}

func TestDefaultSettingsCoverDisclosureTexts(t *testing.T) {
	defaults := DefaultSettings()

	values := make(map[string]string, len(defaults))
	for _, setting := range defaults {
		values[setting.Key] = setting.Value
	}

	assert.NotEmpty(t, values[SettingKVKKText])
	assert.NotEmpty(t, values[SettingAydinlatmaText])
	assert.Contains(t, values, SettingRedirectURL)
	assert.Contains(t, values, SettingVisitorPDFPath)
}
