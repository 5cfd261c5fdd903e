// Package backup sequences one backup run: destination directory creation,
// content-asset copy, and database export download. Steps run strictly in
// order; every step is fatal except a missing content directory, and there
// is no rollback — a half-completed destination may remain after an abort.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ncruces/go-strftime"
)

// databaseFileName is the export blob's file name under the destination root.
const databaseFileName = "ghost-db.json"

// contentDirName is the subdirectory the content assets are copied into.
const contentDirName = "content"

// destDirPerms is used for the destination tree.
const destDirPerms = 0o755

// databaseFilePerms restricts the export to owner read/write — it is the
// entire blog database.
const databaseFilePerms = 0o600

// TokenProvider yields a usable access token, authenticating as needed.
// changed reports whether the persisted config was mutated along the way.
// Defined at the consumer per Go convention "accept interfaces, return
// structs"; ghost.Manager is the real implementation.
type TokenProvider interface {
	EnsureAccessToken(ctx context.Context) (token string, changed bool, err error)
}

// Exporter downloads the raw database export. ghost.Client is the real
// implementation.
type Exporter interface {
	ExportDatabase(ctx context.Context, accessToken string) ([]byte, error)
}

// Result describes one backup run. ConfigChanged is meaningful even when the
// run failed: a credential rotation that happened before the failure still
// needs to be persisted.
type Result struct {
	// DestRoot is the timestamped destination directory.
	DestRoot string
	// AssetsCopied reports whether the content directory existed and was copied.
	AssetsCopied bool
	// DatabasePath is the written export file. Empty if the run aborted first.
	DatabasePath string
	// ConfigChanged reports whether credential handling mutated the config.
	ConfigChanged bool
}

// Orchestrator runs the backup sequence.
type Orchestrator struct {
	destTemplate string
	sourceDir    string
	creds        TokenProvider
	exporter     Exporter
	logger       *slog.Logger

	// now is the clock used to expand the destination template.
	// Tests pin it to a fixed instant.
	now func() time.Time
}

// New creates an orchestrator. destTemplate is a strftime pattern; literal
// text and unrecognized specifiers pass through verbatim, so a template with
// no placeholders names the same directory every run.
func New(destTemplate, sourceDir string, creds TokenProvider, exporter Exporter, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		destTemplate: destTemplate,
		sourceDir:    sourceDir,
		creds:        creds,
		exporter:     exporter,
		logger:       logger,
		now:          time.Now,
	}
}

// Run executes the backup sequence. On error the returned Result still
// carries DestRoot and ConfigChanged so the caller can report the partial
// destination and persist rotated credentials.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	res := Result{DestRoot: strftime.Format(o.destTemplate, o.now())}

	o.logger.Info("starting backup", slog.String("dest", res.DestRoot))

	if err := os.MkdirAll(res.DestRoot, destDirPerms); err != nil {
		return res, fmt.Errorf("backup: creating destination %s: %w", res.DestRoot, err)
	}

	copied, err := o.copyAssets(res.DestRoot)
	if err != nil {
		return res, err
	}

	res.AssetsCopied = copied

	token, changed, err := o.creds.EnsureAccessToken(ctx)
	res.ConfigChanged = changed

	if err != nil {
		return res, err
	}

	body, err := o.exporter.ExportDatabase(ctx, token)
	if err != nil {
		return res, err
	}

	dbPath := filepath.Join(res.DestRoot, databaseFileName)
	if err := os.WriteFile(dbPath, body, databaseFilePerms); err != nil {
		return res, fmt.Errorf("backup: writing database export: %w", err)
	}

	res.DatabasePath = dbPath

	o.logger.Info("backup complete",
		slog.String("dest", res.DestRoot),
		slog.Bool("assets_copied", res.AssetsCopied),
		slog.Int("database_bytes", len(body)),
	)

	return res, nil
}

// copyAssets copies the content directory into the destination. A missing
// source directory is the one recoverable condition in the run: it downgrades
// to a warning and the backup proceeds without assets.
func (o *Orchestrator) copyAssets(destRoot string) (bool, error) {
	if _, err := os.Stat(o.sourceDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			o.logger.Warn("content directory missing, skipping asset copy",
				slog.String("path", o.sourceDir),
			)

			return false, nil
		}

		return false, fmt.Errorf("backup: checking content directory %s: %w", o.sourceDir, err)
	}

	dest := filepath.Join(destRoot, contentDirName)

	o.logger.Info("copying content assets",
		slog.String("from", o.sourceDir),
		slog.String("to", dest),
	)

	if err := copyDir(o.sourceDir, dest); err != nil {
		return false, fmt.Errorf("backup: copying content assets: %w", err)
	}

	return true, nil
}
