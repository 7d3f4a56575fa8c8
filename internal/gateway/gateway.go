package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"recall/internal/config"
	"recall/internal/logging"
	"recall/internal/services"
	"recall/internal/session"
)

// HTTPDoer describes the HTTP client used by the gateway.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const defaultRenewLeeway = 30 * time.Second

// Option customises Client construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for backend calls.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRenewLeeway overrides how close to expiry a token is renewed proactively.
func WithRenewLeeway(leeway time.Duration) Option {
	return func(c *Client) {
		c.renewLeeway = leeway
	}
}

// Client is the single chokepoint for outbound backend calls. Every call
// carries the current access credential; a 401 triggers one renewal attempt
// and one replay of the original request, never more.
type Client struct {
	baseURL     string
	httpClient  HTTPDoer
	sessions    *session.Store
	logger      *slog.Logger
	renewLeeway time.Duration

	// renewMu coalesces concurrent renewals. Each failing request still gets
	// at most one replay; overlapping requests reuse the winner's credential.
	renewMu sync.Mutex
}

// New builds a gateway client for the configured backend.
func New(cfg *config.Config, sessions *session.Store, opts ...Option) *Client {
	timeout := 10 * time.Second
	baseURL := ""
	if cfg != nil {
		baseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
		if cfg.Server.RequestTimeout > 0 {
			timeout = time.Duration(cfg.Server.RequestTimeout) * time.Second
		}
	}

	client := &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		sessions:    sessions,
		logger:      logging.NewNop(),
		renewLeeway: defaultRenewLeeway,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	if client.logger == nil {
		client.logger = logging.NewNop()
	}
	return client
}

// Sessions exposes the session store backing this gateway.
func (c *Client) Sessions() *session.Store {
	return c.sessions
}

// Do performs an authenticated call against the backend and decodes the
// response envelope's data payload into out when out is non-nil. The request
// body is buffered so an eventual replay re-sends identical bytes.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return services.Wrap(services.ErrValidation, "gateway", "encode request", path, err)
		}
		payload = encoded
	}

	requestID, ok := services.RequestIDFromContext(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	logger := c.logger.With(
		slog.String(logging.FieldComponent, "gateway"),
		slog.String(logging.FieldCorrelationID, requestID),
	)

	token := c.sessions.AccessToken()
	if token != "" && session.ExpiresWithin(token, c.renewLeeway) {
		// Best effort: a failed proactive renewal falls through to the
		// reactive 401 path, which owns the terminal decision.
		if renewed, err := c.renew(ctx, token); err == nil {
			token = renewed
		} else {
			logger.Debug("proactive renewal failed", slog.String("error", err.Error()))
		}
	}

	resp, err := c.send(ctx, method, path, payload, token, requestID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "gateway", "call", method+" "+path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		if token == "" {
			return services.Wrap(services.ErrUnauthenticated, "gateway", "call", method+" "+path, nil)
		}

		renewed, renewErr := c.renew(ctx, token)
		if renewErr != nil {
			if clearErr := c.sessions.Clear(); clearErr != nil {
				logger.Warn("clear session after failed renewal", slog.String("error", clearErr.Error()))
			}
			return services.Wrap(services.ErrRenewalFailed, "gateway", "renew", method+" "+path, renewErr)
		}

		logger.Debug("replaying request with renewed credential")
		resp, err = c.send(ctx, method, path, payload, renewed, requestID)
		if err != nil {
			return services.Wrap(services.ErrTransient, "gateway", "replay", method+" "+path, err)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// One replay per request. A second rejection fails outward
			// without another renewal attempt.
			drain(resp)
			return services.Wrap(services.ErrUnauthenticated, "gateway", "replay", method+" "+path, nil)
		}
	}

	return decodeEnvelope(resp, method, path, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token, requestID string) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpClient.Do(req)
}

// renew exchanges the stored refresh token for a fresh credential pair. The
// staleToken guard lets concurrent losers reuse a credential another request
// already renewed instead of issuing a second refresh call.
func (c *Client) renew(ctx context.Context, staleToken string) (string, error) {
	c.renewMu.Lock()
	defer c.renewMu.Unlock()

	if current := c.sessions.AccessToken(); current != "" && current != staleToken {
		return current, nil
	}

	refreshToken := c.sessions.RefreshToken()
	if refreshToken == "" {
		return "", fmt.Errorf("no refresh token available")
	}

	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", fmt.Errorf("encode refresh request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", body, "", uuid.NewString())
	if err != nil {
		return "", fmt.Errorf("refresh call: %w", err)
	}

	var renewed struct {
		AccessToken  string        `json:"accessToken"`
		RefreshToken string        `json:"refreshToken"`
		User         *session.User `json:"user"`
	}
	if err := decodeEnvelope(resp, http.MethodPost, "/auth/refresh", &renewed); err != nil {
		return "", err
	}
	if renewed.AccessToken == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}

	next := session.Session{
		AccessToken:  renewed.AccessToken,
		RefreshToken: renewed.RefreshToken,
		User:         renewed.User,
	}
	if next.RefreshToken == "" {
		next.RefreshToken = refreshToken
	}
	if next.User == nil {
		next.User = c.sessions.Session().User
	}
	if err := c.sessions.SetSession(next); err != nil {
		return "", fmt.Errorf("persist renewed session: %w", err)
	}

	c.logger.Debug("access credential renewed", slog.String(logging.FieldComponent, "gateway"))
	return next.AccessToken, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
