package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stallnig/ghost-backup/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd().
var (
	flagConfigPath string
	flagVerbose    bool
	flagQuiet      bool
)

// httpClientTimeout is the default timeout for HTTP requests.
// Prevents hung connections from blocking the CLI indefinitely.
const httpClientTimeout = 30 * time.Second

// defaultHTTPClient returns an HTTP client with a sensible timeout.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: httpClientTimeout}
}

// newRootCmd builds and returns the fully-assembled root command with all
// subcommands registered. Called once from main(). Running the bare command
// performs a backup — that is the tool's whole purpose.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghost-backup",
		Short: "Back up a self-hosted Ghost blog",
		Long: "Downloads the Ghost database export and copies the local content\n" +
			"directory into a timestamped backup destination.",
		Version: version,
		// Silence Cobra's default error/usage printing — we handle it ourselves.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runBackup,
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	// Register subcommands.
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newBackupCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// configPath returns the effective config file location: the --config flag
// when set, otherwise the platform default.
func configPath() string {
	if flagConfigPath != "" {
		return flagConfigPath
	}

	return config.DefaultPath()
}

// buildLogger creates an slog.Logger configured by the CLI flags.
func buildLogger() *slog.Logger {
	level := slog.LevelInfo

	if flagVerbose {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// saveIfDirty persists the config snapshot, but only when something changed
// since load. An untouched config is never rewritten, so manual edits and
// file timestamps survive runs that mutate nothing.
func saveIfDirty(path string, cfg *config.Config, dirty bool, logger *slog.Logger) error {
	if !dirty {
		logger.Debug("config unchanged, skipping save", slog.String("path", path))
		return nil
	}

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	logger.Info("config saved", slog.String("path", path))

	return nil
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
