package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openrelief/aidtrack/internal/models"
	"github.com/openrelief/aidtrack/internal/observability"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	tokenCacheKey = "notifier:gateway_token"
	tokenSlack    = 60 // seconds shaved off the token TTL before re-auth
)

type authRequest struct {
	ClientID string `json:"clientId"`
	Secret   string `json:"secret"`
}

type authResponse struct {
	Token      string `json:"token"`
	Expiration int64  `json:"expiration"`
}

type messageRequest struct {
	Channel string            `json:"channel"`
	To      string            `json:"to"`
	Vars    map[string]string `json:"vars"`
}

// GatewayDispatcher delivers codes through an external messaging gateway.
// The gateway auth token is cached in Redis between calls.
type GatewayDispatcher struct {
	baseURL  string
	clientID string
	secret   string
	redis    *redis.Client
	client   *http.Client
	logger   *zap.Logger
}

// NewGatewayDispatcher creates a dispatcher for the configured gateway
func NewGatewayDispatcher(baseURL, clientID, secret string, redisClient *redis.Client, timeout time.Duration, logger *zap.Logger) *GatewayDispatcher {
	return &GatewayDispatcher{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		redis:    redisClient,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Send posts the code to the gateway, authenticating first if needed
func (d *GatewayDispatcher) Send(ctx context.Context, channel models.VerificationChannel, recipient, code string) error {
	token, err := d.getAuthToken(ctx)
	if err != nil {
		observability.NotifierDispatches.WithLabelValues(string(channel), "auth_error").Inc()
		return fmt.Errorf("failed to get gateway token: %w", err)
	}

	payload := messageRequest{
		Channel: string(channel),
		To:      recipient,
		Vars:    map[string]string{"COD": code},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := d.client.Do(req)
	if err != nil {
		observability.NotifierDispatches.WithLabelValues(string(channel), "error").Inc()
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.NotifierDispatches.WithLabelValues(string(channel), "error").Inc()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
	}

	observability.NotifierDispatches.WithLabelValues(string(channel), "success").Inc()
	d.logger.Info("verification code dispatched via gateway",
		zap.String("channel", string(channel)),
		zap.String("recipient", maskRecipient(recipient)),
	)
	return nil
}

// getAuthToken returns a gateway token, using Redis as a cache
func (d *GatewayDispatcher) getAuthToken(ctx context.Context) (string, error) {
	token, err := d.redis.Get(ctx, tokenCacheKey).Result()
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && err != redis.Nil {
		d.logger.Warn("failed to read cached gateway token", zap.Error(err))
	}

	body, err := json.Marshal(authRequest{ClientID: d.clientID, Secret: d.secret})
	if err != nil {
		return "", fmt.Errorf("failed to marshal auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/auth/token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("auth request returned status %d", resp.StatusCode)
	}

	var auth authResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}
	if auth.Token == "" {
		return "", fmt.Errorf("auth response contained no token")
	}

	ttl := time.Until(time.Unix(auth.Expiration, 0)) - tokenSlack*time.Second
	if ttl > 0 {
		if err := d.redis.Set(ctx, tokenCacheKey, auth.Token, ttl).Err(); err != nil {
			d.logger.Warn("failed to cache gateway token", zap.Error(err))
		}
	}

	return auth.Token, nil
}
