package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photostudio/internal/repo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestBoot_SQLiteWithMigrate(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "boot.db")
	path := writeConfig(t, `
log:
  level: error
jwt:
  secret: boot-test
db:
  driver: sqlite
  dsn: `+dsn+`
  max_open_conns: 1
  auto_migrate: true
  log_level: silent
`)

	rt, err := Boot(context.Background(), path)
	require.NoError(t, err)
	defer rt.Close()

	require.NotNil(t, rt.Deps)
	assert.True(t, rt.DB.Migrator().HasTable(&repo.ContentModel{}))
	assert.True(t, rt.DB.Migrator().HasTable(&repo.SettingsModel{}))
	assert.Equal(t, "boot-test", rt.Cfg.JWT.Secret)
}

func TestBoot_UnsupportedDriver(t *testing.T) {
	path := writeConfig(t, `
db:
  driver: oracle
`)
	_, err := Boot(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open db")
}

func TestBoot_BadConfig(t *testing.T) {
	path := writeConfig(t, `
jwt:
  algorithm: RS256
`)
	_, err := Boot(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
