package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfigPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "config.toml")
}

func TestLoad_MissingFileReturnsDefaultsNeedingSave(t *testing.T) {
	cfg, needsSave, err := Load(testConfigPath(t))
	require.NoError(t, err)

	assert.True(t, needsSave, "missing file must mark the config for an eventual write")
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ExistingFileIsClean(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, Save(path, Default()))

	cfg, needsSave, err := Load(path)
	require.NoError(t, err)

	assert.False(t, needsSave, "an unmodified load must not trigger a write")
	assert.Equal(t, Default(), cfg)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := testConfigPath(t)

	want := &Config{
		Username:         "editor@example.com",
		BackupDir:        "backups/%Y-%m-%d",
		SourceContentDir: "/srv/ghost/content",
		RefreshToken:     "rt-opaque-value",
		BaseURL:          "blog.example.com",
	}
	require.NoError(t, Save(path, want))

	got, needsSave, err := Load(path)
	require.NoError(t, err)

	assert.False(t, needsSave)
	assert.Equal(t, want, got)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := testConfigPath(t)
	content := `
username = "editor@example.com"
some_future_option = true
nested = { also = "ignored" }
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, needsSave, err := Load(path)
	require.NoError(t, err)

	assert.False(t, needsSave)
	assert.Equal(t, "editor@example.com", cfg.Username)
	assert.Equal(t, defaultBackupDir, cfg.BackupDir, "unset keys keep their defaults")
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`base_url = "blog.example.com"`), 0o600))

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "blog.example.com", cfg.BaseURL)
	assert.Equal(t, defaultSourceContentDir, cfg.SourceContentDir)
	assert.Empty(t, cfg.RefreshToken)
}

func TestLoad_MalformedFileIsFatal(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o600))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestSave_WritesExactlyFiveKeys(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, Save(path, Default()))

	var raw map[string]any
	_, err := toml.DecodeFile(path, &raw)
	require.NoError(t, err)

	assert.Len(t, raw, 5)

	for _, key := range []string{"username", "backup_dir", "source_content_dir", "refresh_token", "base_url"} {
		assert.Contains(t, raw, key)
	}
}

func TestSave_OwnerOnlyPermissions(t *testing.T) {
	path := testConfigPath(t)
	require.NoError(t, Save(path, Default()))

	info, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, os.FileMode(filePerms), info.Mode().Perm())
}

func TestSave_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.toml")
	require.NoError(t, Save(path, Default()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSetRefreshToken_ReportsChange(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.SetRefreshToken("rt-1"))
	assert.False(t, cfg.SetRefreshToken("rt-1"), "setting the same token is not a change")
	assert.True(t, cfg.SetRefreshToken("rt-2"))
	assert.Equal(t, "rt-2", cfg.RefreshToken)
}

func TestClearRefreshToken_ReportsChange(t *testing.T) {
	cfg := Default()
	cfg.RefreshToken = "stale"

	assert.True(t, cfg.ClearRefreshToken())
	assert.Empty(t, cfg.RefreshToken)
	assert.False(t, cfg.ClearRefreshToken(), "clearing an absent token is not a change")
}

func TestSetUsername_ReportsChange(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.SetUsername("editor@example.com"))
	assert.False(t, cfg.SetUsername("editor@example.com"))
}

func TestDefaultPath_UnderConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := DefaultPath()
	assert.Equal(t, configFileName, filepath.Base(path))
	assert.Contains(t, path, appName)
}
