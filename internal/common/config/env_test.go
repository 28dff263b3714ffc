package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("SEQUENCE_STORE", "")
		t.Setenv("LEDGER_DB_PATH", "")
		t.Setenv("RECONCILE_WINDOW_DAYS", "")
		t.Setenv("TRUST_FORWARDED_JWT", "")
		t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Equal(t, SequenceStoreSQLite, cfg.SequenceStore)
		assert.Equal(t, "./data/ledger.db", cfg.DBPath)
		assert.Equal(t, 3, cfg.ReconcileWindowDays)
		assert.False(t, cfg.TrustForwardedJWT)
		assert.False(t, cfg.IsLambda())
	})

	t.Run("dynamodb sequencer requires a table", func(t *testing.T) {
		t.Setenv("SEQUENCE_STORE", SequenceStoreDynamoDB)
		t.Setenv("DYNAMODB_TABLE_NAME", "")

		_, err := LoadFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DYNAMODB_TABLE_NAME")
	})

	t.Run("unknown sequencer", func(t *testing.T) {
		t.Setenv("SEQUENCE_STORE", "redis")

		_, err := LoadFromEnv()
		require.Error(t, err)
	})

	t.Run("invalid window", func(t *testing.T) {
		t.Setenv("SEQUENCE_STORE", "")
		t.Setenv("RECONCILE_WINDOW_DAYS", "-1")

		_, err := LoadFromEnv()
		require.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LEDGER_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("LEDGER_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("LEDGER_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("LEDGER_TEST_DOTENV"))
}
