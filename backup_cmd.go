package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stallnig/ghost-backup/internal/backup"
	"github.com/stallnig/ghost-backup/internal/config"
	"github.com/stallnig/ghost-backup/internal/ghost"
	"github.com/stallnig/ghost-backup/internal/prompt"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Run a full backup (the default command)",
		RunE:  runBackup,
	}
}

func runBackup(_ *cobra.Command, _ []string) error {
	logger := buildLogger()
	ctx := context.Background()

	path := configPath()

	cfg, dirty, err := config.Load(path)
	if err != nil {
		return err
	}

	client := ghost.NewClient(cfg.BaseURL, defaultHTTPClient(), logger)
	manager := ghost.NewManager(client, cfg, prompt.Credentials(os.Stdin, os.Stderr), logger)
	orch := backup.New(cfg.BackupDir, cfg.SourceContentDir, manager, client, logger)

	res, runErr := orch.Run(ctx)
	if res.ConfigChanged {
		dirty = true
	}

	// Credentials may have rotated even when the run failed later; persist
	// them regardless so the next run doesn't hold a discarded token.
	if saveErr := saveIfDirty(path, cfg, dirty, logger); saveErr != nil {
		if runErr != nil {
			logger.Warn("failed to persist config", slog.String("error", saveErr.Error()))
		} else {
			return saveErr
		}
	}

	if runErr != nil {
		return runErr
	}

	if res.AssetsCopied {
		statusf(flagQuiet, "Copied %s to %s\n",
			cfg.SourceContentDir, filepath.Join(res.DestRoot, "content"))
	} else {
		statusf(flagQuiet, "Warning: content directory %s does not exist, skipped asset copy\n",
			cfg.SourceContentDir)
	}

	statusf(flagQuiet, "Backup complete: %s\n", res.DestRoot)

	return nil
}
