package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/stallnig/ghost-backup/internal/config"
	"github.com/stallnig/ghost-backup/internal/ghost"
	"github.com/stallnig/ghost-backup/internal/prompt"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Establish or refresh credentials and persist them",
		RunE:  runLogin,
	}
}

func runLogin(_ *cobra.Command, _ []string) error {
	logger := buildLogger()
	ctx := context.Background()

	path := configPath()

	cfg, dirty, err := config.Load(path)
	if err != nil {
		return err
	}

	client := ghost.NewClient(cfg.BaseURL, defaultHTTPClient(), logger)
	manager := ghost.NewManager(client, cfg, prompt.Credentials(os.Stdin, os.Stderr), logger)

	_, changed, authErr := manager.EnsureAccessToken(ctx)
	if changed {
		dirty = true
	}

	// A rejected refresh token is discarded before the password flow runs;
	// persist that even when the login ultimately failed.
	if saveErr := saveIfDirty(path, cfg, dirty, logger); saveErr != nil && authErr == nil {
		return saveErr
	}

	if authErr != nil {
		return authErr
	}

	statusf(flagQuiet, "Login successful.\n")

	return nil
}
