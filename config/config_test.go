package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "sqlite:///./activities.db", c.Database.URL)
	require.Equal(t, ModeRelease, c.Mode)
	require.Equal(t, "./backups", c.Backup.Dir)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
port: "9000"
prefix: /api/
database:
  url: postgres://school:secret@db:5432/activities
  max_open_conns: 40
backup:
  dir: /var/backups
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("DATABASE_MAX_OPEN_CONNS", "12")
	t.Setenv("BACKUP_DIR", "/srv/backups")
	t.Setenv("DEBUG", "true")

	c, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "9000", c.Port)
	require.Equal(t, "api", c.Prefix)
	require.Equal(t, "postgres://school:secret@db:5432/activities", c.Database.URL)
	require.Equal(t, 12, c.Database.MaxOpenConns)
	require.Equal(t, 5, c.Database.MaxIdleConns)
	require.Equal(t, "/srv/backups", c.Backup.Dir)
	require.Equal(t, ModeDebug, c.Mode)
}

func TestValidate(t *testing.T) {
	c := Default()
	require.ErrorIs(t, c.Validate(), ErrNoJWTSecret)

	c.JWT.AccessSecret = "  "
	require.ErrorIs(t, c.Validate(), ErrNoJWTSecret)

	c.JWT.AccessSecret = "s3cr3t"
	require.NoError(t, c.Validate())
}
