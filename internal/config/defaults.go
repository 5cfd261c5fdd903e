package config

// Default values for configuration options. They target the standard
// single-instance Ghost install so a first run works without a config file.
const (
	defaultBackupDir        = "ghost-backup-%Y-%m-%d"
	defaultSourceContentDir = "/var/www/ghost/content"
	defaultBaseURL          = "http://localhost:2368"
)

// Default returns a Config populated with all default values. It is used
// both as the starting point for TOML decoding (so unset keys retain
// defaults) and as the fallback when no config file exists.
func Default() *Config {
	return &Config{
		BackupDir:        defaultBackupDir,
		SourceContentDir: defaultSourceContentDir,
		BaseURL:          defaultBaseURL,
	}
}
