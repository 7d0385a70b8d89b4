package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityClient talks to the external identity provider. The provider
// owns credential verification and token issuance; this client never
// sees password hashes or session state.
type IdentityClient interface {
	// ResolveUser exchanges a bearer token for the user it belongs to.
	ResolveUser(ctx context.Context, token string) (*ProviderUser, error)
	// SignUp creates a new account with the provider.
	SignUp(ctx context.Context, email, password string) (*ProviderUser, error)
	// SignIn verifies credentials with the provider.
	SignIn(ctx context.Context, email, password string) (*ProviderUser, error)
}

// ProviderUser is the normalized identity returned by the provider.
// Role may be empty; callers apply the standard-user default.
type ProviderUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// Compile-time check to ensure implementation satisfies the interface.
var _ IdentityClient = (*HTTPIdentityClient)(nil)

// HTTPIdentityClient is the HTTP implementation of IdentityClient.
type HTTPIdentityClient struct {
	baseURL    string // Base URL of the identity provider (e.g. "https://auth.example.com")
	serviceKey string // API key sent with every request
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPIdentityClient creates a new HTTP client for the identity provider.
func NewHTTPIdentityClient(baseURL, serviceKey string, logger *zap.Logger) *HTTPIdentityClient {
	baseURL = strings.TrimSuffix(baseURL, "/")
	return &HTTPIdentityClient{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger.Named("HTTPIdentityClient"),
	}
}

// providerUserPayload mirrors the provider's user object.
type providerUserPayload struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		Role string `json:"role"`
	} `json:"user_metadata"`
}

func (p *providerUserPayload) toProviderUser() (*ProviderUser, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("identity provider returned invalid user id %q: %w", p.ID, err)
	}
	return &ProviderUser{
		ID:    id,
		Email: p.Email,
		Role:  p.UserMetadata.Role,
	}, nil
}

// ResolveUser implements IdentityClient via GET /auth/v1/user.
func (c *HTTPIdentityClient) ResolveUser(ctx context.Context, token string) (*ProviderUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolve-user request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	c.setAPIKey(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute resolve-user request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute resolve-user request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Identity provider rejected token", zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: identity provider returned status %d", models.ErrTokenInvalid, resp.StatusCode)
	}

	var payload providerUserPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode resolve-user response: %w", err)
	}
	return payload.toProviderUser()
}

// SignUp implements IdentityClient via POST /auth/v1/signup.
func (c *HTTPIdentityClient) SignUp(ctx context.Context, email, password string) (*ProviderUser, error) {
	payload, err := c.postCredentials(ctx, "/auth/v1/signup", email, password)
	if err != nil {
		return nil, err
	}
	return payload.toProviderUser()
}

// SignIn implements IdentityClient via the password grant endpoint. The
// provider wraps the user object on this endpoint, unlike signup.
func (c *HTTPIdentityClient) SignIn(ctx context.Context, email, password string) (*ProviderUser, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign-in request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/token?grant_type=password", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.setAPIKey(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute sign-in request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute sign-in request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return nil, models.ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Identity provider returned non-OK status for sign-in", zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: identity provider returned status %d", models.ErrUpstream, resp.StatusCode)
	}

	var wrapper struct {
		User providerUserPayload `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}
	return wrapper.User.toProviderUser()
}

func (c *HTTPIdentityClient) postCredentials(ctx context.Context, path, email, password string) (*providerUserPayload, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.setAPIKey(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute identity provider request", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest {
		return nil, fmt.Errorf("%w: identity provider rejected the request", models.ErrValidation)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Identity provider returned non-OK status", zap.String("path", path), zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: identity provider returned status %d", models.ErrUpstream, resp.StatusCode)
	}

	var payload providerUserPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode identity provider response: %w", err)
	}
	return &payload, nil
}

func (c *HTTPIdentityClient) setAPIKey(req *http.Request) {
	if c.serviceKey != "" {
		req.Header.Set("apikey", c.serviceKey)
	} else {
		c.logger.Warn("Identity provider service key is not set, API call might fail")
	}
}
