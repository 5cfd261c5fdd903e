// Package config implements TOML configuration loading, mutation tracking,
// and platform-specific path resolution for ghost-backup. The file holds
// exactly five keys; unknown keys are ignored on load and never written back.
package config

// Config is the persisted configuration. Every field round-trips through the
// TOML file; RefreshToken is a long-lived secret and the reason the file is
// written with owner-only permissions.
type Config struct {
	Username         string `toml:"username"`
	BackupDir        string `toml:"backup_dir"`
	SourceContentDir string `toml:"source_content_dir"`
	RefreshToken     string `toml:"refresh_token"`
	BaseURL          string `toml:"base_url"`
}

// SetUsername records the username entered during a successful password
// login so later runs can offer it as the prompt default. Returns whether
// the config changed.
func (c *Config) SetUsername(username string) bool {
	if c.Username == username {
		return false
	}

	c.Username = username

	return true
}

// SetRefreshToken stores a newly issued refresh token. Returns whether the
// config changed — callers compose these change reports into a single dirty
// flag that decides whether the file is persisted at exit.
func (c *Config) SetRefreshToken(token string) bool {
	if c.RefreshToken == token {
		return false
	}

	c.RefreshToken = token

	return true
}

// ClearRefreshToken discards a refresh token the server rejected. Returns
// whether the config changed.
func (c *Config) ClearRefreshToken() bool {
	return c.SetRefreshToken("")
}
