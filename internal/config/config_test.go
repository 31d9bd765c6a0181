package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when file is missing", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, Defaults(), cfg)
	})

	t.Run("should override defaults with file and env", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := []byte(`
port: 9090
db:
  driver: sqlite
  path: /tmp/ledger.db
comparison:
  categoryrule: type_aware
table:
  pagesize: 50
`)
		require.NoError(t, os.WriteFile(path, content, 0o600))
		t.Setenv("BUDGET_DB_HOST", "db.internal")
		t.Setenv("BUDGET_TABLE_PAGESIZE", "10")

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, DriverSqlite, cfg.Database.Driver)
		assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, CategoryRuleTypeAware, cfg.Comparison.CategoryRule)
		assert.Equal(t, 10, cfg.Table.PageSize)
		assert.False(t, cfg.Amqp.Enabled)
	})

	t.Run("should fail on malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
