package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "https://marketplace.test")

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 10*time.Second, cfg.MarketplaceAPITimeout)
		assert.Equal(t, 20, cfg.OrdersPageSize)
		assert.Equal(t, 10, cfg.ProductsPageSize)
		assert.Equal(t, "*/5 * * * * *", cfg.OutboxRelaySchedule)
		assert.False(t, cfg.HasDatabase())
	})

	t.Run("should read variables from the env file", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "https://marketplace.test")
		t.Setenv("HTTP_PORT", "9090")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("DB_HOST=db.internal\nDB_USER=bff\nDB_NAME=journal\nHTTP_PORT=7070\n"), 0o600))
		t.Cleanup(func() {
			for _, key := range []string{"DB_HOST", "DB_USER", "DB_NAME"} {
				require.NoError(t, os.Unsetenv(key))
			}
		})

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.HTTPPort, "the environment wins over the file")
		assert.True(t, cfg.HasDatabase())
		assert.Equal(t, "host=db.internal port=5432 user=bff password= dbname=journal sslmode=disable", cfg.DSN())
	})

	t.Run("should require the marketplace URL", func(t *testing.T) {
		t.Setenv("MARKETPLACE_API_URL", "")
		require.NoError(t, os.Unsetenv("MARKETPLACE_API_URL"))

		_, err := LoadConfig("")
		assert.Error(t, err)
	})
}
