package ghost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/stallnig/ghost-backup/internal/config"
)

// CredentialPrompt collects a username and password interactively.
// defaultUsername is the last username that logged in successfully, offered
// as the prompt default. The password is held in memory only — never
// persisted, never logged. Tests substitute a non-interactive source.
type CredentialPrompt func(defaultUsername string) (username, password string, err error)

// Manager owns the access/refresh token pair for one process invocation.
// The refresh token is long-lived and persisted in the config; the access
// token lives only in memory and is re-derived every run.
//
// Manager moves through three states: no credential (password flow),
// has-refresh-token (refresh flow, falling back to the password flow when
// the server rejects the stored token), and active (access token held, no
// further round-trips this run).
type Manager struct {
	client *Client
	cfg    *config.Config
	prompt CredentialPrompt
	logger *slog.Logger

	// accessToken non-empty means the manager is in the active state.
	accessToken string
}

// NewManager creates a credential manager over the given client and config.
// The initial state is determined solely by cfg.RefreshToken.
func NewManager(client *Client, cfg *config.Config, prompt CredentialPrompt, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		client: client,
		cfg:    cfg,
		prompt: prompt,
		logger: logger,
	}
}

// EnsureAccessToken returns a usable access token, refreshing or newly
// authenticating as needed. Within one call it performs at most one refresh
// attempt followed by at most one password-flow attempt, never more.
//
// changed reports whether the config was mutated (refresh token rotated or
// discarded, username recorded); the caller composes it into the dirty flag
// that decides whether the config file is persisted.
func (m *Manager) EnsureAccessToken(ctx context.Context) (token string, changed bool, err error) {
	if m.accessToken != "" {
		return m.accessToken, false, nil
	}

	if m.cfg.RefreshToken != "" {
		tok, refreshErr := m.client.RefreshGrant(ctx, m.cfg.RefreshToken)
		if refreshErr == nil {
			// Ghost usually answers the refresh grant with only a new access
			// token; if it rotates the refresh token, persist the rotation.
			if m.cfg.SetRefreshToken(tok.RefreshToken) {
				changed = true
			}

			m.accessToken = tok.AccessToken

			return m.accessToken, changed, nil
		}

		var retrieveErr *oauth2.RetrieveError
		if !errors.As(refreshErr, &retrieveErr) {
			// No response from the server — nothing says the token is bad.
			return "", changed, refreshErr
		}

		m.logger.Warn("stored refresh token rejected, falling back to password login",
			slog.Int("status", retrieveErr.Response.StatusCode),
		)

		if m.cfg.ClearRefreshToken() {
			changed = true
		}
	}

	username, password, promptErr := m.prompt(m.cfg.Username)
	if promptErr != nil {
		return "", changed, fmt.Errorf("ghost: collecting credentials: %w", promptErr)
	}

	tok, grantErr := m.client.PasswordGrant(ctx, username, password)
	if grantErr != nil {
		return "", changed, grantErr
	}

	if tok.RefreshToken != "" && m.cfg.SetRefreshToken(tok.RefreshToken) {
		changed = true
	}

	if m.cfg.SetUsername(username) {
		changed = true
	}

	m.accessToken = tok.AccessToken

	m.logger.Info("authenticated via password grant", slog.String("username", username))

	return m.accessToken, changed, nil
}
