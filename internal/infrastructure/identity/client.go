package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"clinic-storage-api/config"
	"clinic-storage-api/internal/application/ports"
)

const requestTimeout = 10 * time.Second

// Client resolves bearer tokens against the identity provider's user
// endpoint. Used when no local signing secret is configured.
type Client struct {
	logger     *zap.Logger
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewClient(logger *zap.Logger, cfg config.Auth) *Client {
	return &Client{
		logger:     logger,
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type userResponse struct {
	ID string `json:"id"`
}

func (c *Client) Resolve(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var u userResponse
	if err = json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}
	if u.ID == "" {
		return "", ErrInvalidToken
	}

	return u.ID, nil
}

// New picks the local verifier when a signing secret is configured,
// otherwise falls back to the remote provider client.
func New(logger *zap.Logger, cfg config.Auth) ports.IdentityResolver {
	if cfg.JWTSecret != "" {
		return NewLocalVerifier(cfg.JWTSecret)
	}
	return NewClient(logger, cfg)
}
