// REST identity provider implementation of [Identity]
//
// Endpoint shapes follow the Identity Toolkit password API:
// accounts:signInWithPassword, accounts:signUp, token refresh and revocation.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/shared"
	"golang.org/x/oauth2"
)

// IdentityService implements [Identity] against a hosted identity REST API.
type IdentityService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewIdentityService creates an identity provider client.
func NewIdentityService(baseURL, apiKey string, client *http.Client) (*IdentityService, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("%w: identity base_url and api_key are required", shared.ErrInvalidConfig)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &IdentityService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}, nil
}

func (s *IdentityService) Name() string {
	return "IdentityToolkit"
}

// authResponse is the provider's session payload.
type authResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// refreshResponse is the provider's token exchange payload.
type refreshResponse struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
}

// providerError is the provider's error envelope. Its message codes are
// classified onto shared sentinels and never shown to users directly.
type providerError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Login exchanges email/password credentials for an authenticated session.
func (s *IdentityService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}

	var resp authResponse
	if err := s.post(ctx, "/accounts:signInWithPassword", body, &resp); err != nil {
		return nil, err
	}

	return resultFromAuth(resp), nil
}

// Signup creates a new account and returns its authenticated session.
func (s *IdentityService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}

	var resp authResponse
	if err := s.post(ctx, "/accounts:signUp", body, &resp); err != nil {
		return nil, err
	}

	return resultFromAuth(resp), nil
}

// Logout revokes the given refresh token.
func (s *IdentityService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	body := map[string]any{"refreshToken": refreshToken}
	return s.post(ctx, "/accounts:signOut", body, &struct{}{})
}

// Resolve exchanges a stored refresh token for a fresh session.
func (s *IdentityService) Resolve(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, shared.ErrNotAuthenticated
	}

	body := map[string]any{"grant_type": "refresh_token", "refresh_token": refreshToken}

	var resp refreshResponse
	if err := s.post(ctx, "/token", body, &resp); err != nil {
		return nil, err
	}

	return &AuthResult{
		Identity: models.Identity{UID: resp.UserID},
		Token:    newToken(resp.IDToken, resp.RefreshToken, resp.ExpiresIn),
	}, nil
}

// post performs a JSON POST against the provider, classifying error responses.
func (s *IdentityService) post(ctx context.Context, endpoint string, body, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := s.baseURL + endpoint + "?key=" + s.apiKey

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var perr providerError
		if err := json.NewDecoder(resp.Body).Decode(&perr); err != nil {
			return fmt.Errorf("%w: status %d", shared.ErrAuthFailed, resp.StatusCode)
		}
		return classifyProviderError(perr.Error.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: malformed response: %v", shared.ErrAuthFailed, err)
	}

	return nil
}

// classifyProviderError maps provider error codes onto shared sentinels.
//
// Codes sometimes carry suffixes ("WEAK_PASSWORD : ..."), so match on prefix.
func classifyProviderError(code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"):
		return shared.ErrUserNotFound
	case strings.HasPrefix(code, "INVALID_PASSWORD"), strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return shared.ErrInvalidCredentials
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return shared.ErrEmailInUse
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return shared.ErrWeakPassword
	case strings.HasPrefix(code, "TOKEN_EXPIRED"), strings.HasPrefix(code, "INVALID_REFRESH_TOKEN"), strings.HasPrefix(code, "USER_DISABLED"):
		return shared.ErrSessionExpired
	default:
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed, code)
	}
}

func resultFromAuth(resp authResponse) *AuthResult {
	return &AuthResult{
		Identity: models.Identity{
			UID:         resp.LocalID,
			Email:       resp.Email,
			DisplayName: resp.DisplayName,
		},
		Token: newToken(resp.IDToken, resp.RefreshToken, resp.ExpiresIn),
	}
}

// newToken builds an [oauth2.Token] from provider fields.
//
// ExpiresIn arrives as a string of seconds; an unparseable value leaves the
// token without expiry, which oauth2 treats as never expiring.
func newToken(idToken, refreshToken, expiresIn string) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  idToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	if secs, err := strconv.ParseInt(expiresIn, 10, 64); err == nil {
		token.Expiry = time.Now().Add(time.Duration(secs) * time.Second)
	}

	return token
}
