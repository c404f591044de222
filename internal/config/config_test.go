package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_PASSWORD", "JWT_SECRET_KEY", "ROSTER_BANNER_LABELS", "ROSTER_NAME_COLUMN_INDEX", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Read()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 0, cfg.Roster.NameColumnIndex)
	assert.True(t, cfg.Roster.DropLeadingColumn)
	assert.Equal(t, []string{"FULL TIME", "PART TIME 3/4", "PART TIME 1/2", "PART TIME 1/4", "INSTRUKTORZY"}, cfg.Roster.BannerLabels)
	assert.Equal(t, []string{cfg.App.FrontendURL}, cfg.App.CORSAllowedOrigins)
	assert.False(t, cfg.OAuth2Google.Enabled())

	assert.Error(t, cfg.Validate())
}

func TestRead_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("ROSTER_BANNER_LABELS", "STAFF, TRAINERS ")
	t.Setenv("ROSTER_DROP_LEADING_COLUMN", "false")
	t.Setenv("ROSTER_NAME_COLUMN_INDEX", "2")

	cfg, err := Read()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"STAFF", "TRAINERS"}, cfg.Roster.BannerLabels)
	assert.False(t, cfg.Roster.DropLeadingColumn)
	assert.Equal(t, 2, cfg.Roster.NameColumnIndex)
	assert.Contains(t, cfg.DatabaseURL(), "p%40ss%20word")
}

func TestRead_InvalidNumber(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "eighty")

	_, err := Read()
	assert.Error(t, err)
}
