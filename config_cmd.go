package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stallnig/ghost-backup/internal/config"
	"github.com/stallnig/ghost-backup/internal/ghost"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Write out and display the configuration without contacting the server",
		RunE:  runConfig,
	}
}

func runConfig(_ *cobra.Command, _ []string) error {
	logger := buildLogger()
	path := configPath()

	cfg, dirty, err := config.Load(path)
	if err != nil {
		return err
	}

	// Materializes the default file on first run; an existing file that
	// parsed cleanly is left untouched.
	if err := saveIfDirty(path, cfg, dirty, logger); err != nil {
		return err
	}

	printConfig(path, cfg)

	return nil
}

// printConfig writes the effective five-key configuration to stdout. The
// refresh token is a secret: only its presence is shown.
func printConfig(path string, cfg *config.Config) {
	fmt.Printf("Config file: %s\n\n", path)
	fmt.Printf("username:           %s\n", orUnset(cfg.Username))
	fmt.Printf("backup_dir:         %s\n", cfg.BackupDir)
	fmt.Printf("source_content_dir: %s\n", cfg.SourceContentDir)
	fmt.Printf("refresh_token:      %s\n", tokenPresence(cfg.RefreshToken))
	fmt.Printf("base_url:           %s\n", cfg.BaseURL)
	fmt.Printf("\nEffective API root: %s\n", ghost.APIRoot(cfg.BaseURL))
}

func orUnset(v string) string {
	if v == "" {
		return "(not set)"
	}

	return v
}

func tokenPresence(token string) string {
	if token == "" {
		return "(not set)"
	}

	return "(set)"
}
