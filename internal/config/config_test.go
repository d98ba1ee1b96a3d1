package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "classforge", cfg.DBName)
	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 5*time.Second, cfg.TxTimeout)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_InvalidTxTimeout(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("TX_TIMEOUT", "bogus")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TX_TIMEOUT")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("TX_TIMEOUT", "250ms")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.TxTimeout)
	assert.Contains(t, cfg.GetDBConnString(), "db.internal")
}

func TestValidateEnv_ReportsMissing(t *testing.T) {
	for _, v := range RequiredEnvVars {
		t.Setenv(v, "")
	}
	t.Setenv("DB_USER", "postgres")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.NotContains(t, err.Error(), "DB_USER")
}
