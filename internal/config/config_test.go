package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://cloud.appwrite.io/v1", c.Endpoint)
	assert.Equal(t, "user-database", c.DatabaseID)
	assert.Equal(t, "users", c.UsersCollection)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_RequiresProjectID(t *testing.T) {
	t.Setenv("EVENTHUB_PROJECT_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EVENTHUB_PROJECT_ID")
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("EVENTHUB_PROJECT_ID", "proj-1")
	t.Setenv("EVENTHUB_ENDPOINT", "http://localhost/v1")
	t.Setenv("EVENTHUB_REQUEST_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "proj-1", cfg.ProjectID)
	assert.Equal(t, "http://localhost/v1", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "users", cfg.UsersCollection, "unset variables keep defaults")
}
