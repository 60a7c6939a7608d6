// Package broker calls the external identity broker that turns an external session id
// into the caller's identity and a session token.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sarawak-tourism/internal/auth/domain/model"
	"sarawak-tourism/internal/auth/domain/repository"
	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"
	"sarawak-tourism/internal/shared/resilience"
)

const (
	sessionIDHeader = "X-Session-ID"
	serviceName     = "identity_broker"
	// maxErrorBody bounds how much of an error response is kept as detail
	maxErrorBody = 1024
)

// rejectedError is a non-200 answer: the broker is up but refused the session id.
type rejectedError struct {
	status int
	body   string
}

func (e *rejectedError) Error() string {
	return fmt.Sprintf("identity broker returned %d: %s", e.status, e.body)
}

// Client implements repository.IdentityBroker over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *resilience.Breaker[*model.ExternalIdentity]
	logger     logger.Logger
	metrics    metrics.Recorder
}

// NewClient creates a broker client. Every call is bounded by timeout.
func NewClient(endpoint string, timeout time.Duration, log logger.Logger, rec metrics.Recorder) *Client {
	log = log.WithComponent(serviceName)

	cfg := resilience.DefaultBreakerConfig(serviceName)
	cfg.Healthy = func(err error) bool {
		var rejected *rejectedError
		return errors.As(err, &rejected) && rejected.status < http.StatusInternalServerError
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		breaker: resilience.NewBreaker[*model.ExternalIdentity](cfg, func(name, from, to string) {
			log.WithFields(map[string]interface{}{"breaker": name, "from": from, "to": to}).Warn("Circuit breaker state changed")
		}),
		logger:  log,
		metrics: rec,
	}
}

// FetchIdentity exchanges externalSessionID for an identity. Every failure is an
// UpstreamAuthError carrying the broker's detail.
func (c *Client) FetchIdentity(ctx context.Context, externalSessionID string) (*model.ExternalIdentity, error) {
	identity, err := c.breaker.Execute(func() (*model.ExternalIdentity, error) {
		return c.fetch(ctx, externalSessionID)
	})
	if err != nil {
		c.metrics.RecordUpstreamFailure(serviceName)
		c.logger.WithContext(ctx).WithFields(map[string]interface{}{"error": err.Error()}).Warn("Identity broker exchange failed")
		return nil, apperrors.NewUpstreamAuthError("failed to create session", err.Error()).WithComponent(serviceName)
	}
	return identity, nil
}

func (c *Client) fetch(ctx context.Context, externalSessionID string) (*model.ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build broker request: %w", err)
	}
	req.Header.Set(sessionIDHeader, externalSessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call identity broker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &rejectedError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	var identity model.ExternalIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decode broker response: %w", err)
	}
	if identity.Email == "" || identity.SessionToken == "" {
		return nil, errors.New("broker response is missing email or session_token")
	}
	return &identity, nil
}

var _ repository.IdentityBroker = (*Client)(nil)
