package ghost

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
)

// apiVersionPath is the versioned API prefix appended to every base URL.
const apiVersionPath = "/ghost/api/v0.1"

// clientID is Ghost's fixed public OAuth2 client for the admin API.
const clientID = "ghost-admin"

const userAgent = "ghost-backup/0.1"

// APIRoot normalizes a configured base URL into the effective API root.
// A URL without a scheme gets https; trailing slashes are dropped so the
// versioned path joins cleanly. "example.com" becomes
// "https://example.com/ghost/api/v0.1".
func APIRoot(baseURL string) string {
	u := strings.TrimSpace(baseURL)
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}

	return strings.TrimRight(u, "/") + apiVersionPath
}

// Client is an HTTP client for the Ghost v0.1 admin API. It handles request
// construction, authentication, and error classification. Requests are never
// retried: a failed step aborts the whole run.
type Client struct {
	apiRoot    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Ghost API client for the given base URL
// (scheme optional, see APIRoot).
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiRoot:    APIRoot(baseURL),
		httpClient: httpClient,
		logger:     logger,
	}
}

// APIRoot returns the normalized API root the client issues requests against.
func (c *Client) APIRoot() string {
	return c.apiRoot
}

// ExportDatabase downloads the full database export as an opaque JSON blob.
// The access token travels as a query credential, so the request URL is
// never logged.
func (c *Client) ExportDatabase(ctx context.Context, accessToken string) ([]byte, error) {
	exportURL := c.apiRoot + "/db/?access_token=" + url.QueryEscape(accessToken)

	c.logger.Info("downloading database export", slog.String("endpoint", c.apiRoot+"/db/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("ghost: creating export request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ghost: requesting database export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			errBody = []byte("(failed to read response body)")
		}

		c.logger.Error("database export failed",
			slog.Int("status", resp.StatusCode),
		)

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(errBody),
			Err:        classifyStatus(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ghost: reading export body: %w", err)
	}

	c.logger.Debug("database export downloaded", slog.Int("bytes", len(body)))

	return body, nil
}

// oauthConfig builds the oauth2 config for Ghost's token endpoint. Ghost is
// a public client: client_id travels in the form body, there is no secret.
func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.apiRoot + "/authentication/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// oauthContext routes the oauth2 library's requests through the client's
// http.Client so tests and timeouts apply to token exchanges too.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// PasswordGrant exchanges a username and password for a token pair.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (*oauth2.Token, error) {
	c.logger.Info("requesting token via password grant", slog.String("username", username))

	tok, err := c.oauthConfig().PasswordCredentialsToken(c.oauthContext(ctx), username, password)
	if err != nil {
		return nil, fmt.Errorf("ghost: password authentication failed: %w", err)
	}

	return tok, nil
}

// RefreshGrant exchanges a stored refresh token for a new access token.
// A server-side rejection surfaces as *oauth2.RetrieveError, which callers
// treat as an expired token; transport failures surface as plain errors.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	c.logger.Info("requesting token via refresh grant")

	src := c.oauthConfig().TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("ghost: refreshing access token: %w", err)
	}

	return tok, nil
}
