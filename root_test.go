package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stallnig/ghost-backup/internal/config"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "login")
	assert.Contains(t, names, "backup")
	assert.Contains(t, names, "config")
	assert.NotNil(t, cmd.RunE, "the bare command runs a backup")
}

func TestConfigPath_FlagOverride(t *testing.T) {
	orig := flagConfigPath
	t.Cleanup(func() { flagConfigPath = orig })

	flagConfigPath = "/tmp/alternate.toml"
	assert.Equal(t, "/tmp/alternate.toml", configPath())

	flagConfigPath = ""
	assert.Equal(t, config.DefaultPath(), configPath())
}

func TestSaveIfDirty_NoWriteWhenClean(t *testing.T) {
	// The parent "directory" is a file: any write attempt would fail loudly,
	// so a nil error proves the clean path never touches the disk.
	parent := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o600))

	path := filepath.Join(parent, "config.toml")

	err := saveIfDirty(path, config.Default(), false, buildLogger())
	assert.NoError(t, err)
}

func TestSaveIfDirty_WritesWhenDirty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, saveIfDirty(path, config.Default(), true, buildLogger()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestRunConfig_MaterializesDefaultsOnce(t *testing.T) {
	orig := flagConfigPath
	t.Cleanup(func() { flagConfigPath = orig })

	flagConfigPath = filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, runConfig(nil, nil))

	first, err := os.ReadFile(flagConfigPath)
	require.NoError(t, err)

	// Second invocation loads a clean config and must not rewrite the file.
	require.NoError(t, runConfig(nil, nil))

	second, err := os.ReadFile(flagConfigPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
