// Package auth orchestrates login, logout, and current-user lookups on top
// of the credential vault and the API client.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/royreznik/linear-cli/internal/config"
	"github.com/royreznik/linear-cli/internal/linear"
	"github.com/royreznik/linear-cli/internal/vault"
)

// Service ties the vault and the API endpoints together for the auth
// commands.
type Service struct {
	cfg   *config.Config
	vault *vault.Vault
}

// New builds a Service over cfg and v.
func New(cfg *config.Config, v *vault.Vault) *Service {
	return &Service{cfg: cfg, vault: v}
}

// Client returns an API client carrying the active credential. It fails
// with an AuthError when no credential is stored.
func (s *Service) Client() (*linear.Client, error) {
	token, err := s.vault.Token()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, &linear.AuthError{Message: "not authenticated: run 'linear auth login'"}
	}
	return linear.NewClient(s.cfg, token), nil
}

// LoginWithAPIKey validates a long-lived API key against the remote
// service and stores it in the dedicated key file.
func (s *Service) LoginWithAPIKey(ctx context.Context, apiKey string) (*linear.User, error) {
	client := linear.NewClient(s.cfg, apiKey)
	user, err := client.Viewer(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := s.vault.SaveAPIKey(apiKey); err != nil {
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}
	return user, nil
}

// LoginWithPassword exchanges an email and password for a session token,
// verifies it by fetching the user profile, and stores it in the vault.
func (s *Service) LoginWithPassword(ctx context.Context, email, password string) (*linear.User, error) {
	client := linear.NewClient(s.cfg, "")
	token, err := client.AuthenticatePassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	user, err := client.WithToken(token).Viewer(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := s.vault.SaveSessionToken(token); err != nil {
		return nil, fmt.Errorf("failed to save authentication token: %w", err)
	}
	return user, nil
}

// Logout clears every credential storage layer.
func (s *Service) Logout() error {
	if err := s.vault.Clear(); err != nil {
		return fmt.Errorf("failed to clear authentication data: %w", err)
	}
	return nil
}

// CurrentUser fetches the authenticated user's profile. An authentication
// failure clears the vault, so a stale credential is never retried.
func (s *Service) CurrentUser(ctx context.Context) (*linear.User, error) {
	client, err := s.Client()
	if err != nil {
		return nil, err
	}
	user, err := client.Viewer(ctx)
	var authErr *linear.AuthError
	if errors.As(err, &authErr) {
		_ = s.vault.Clear()
		return nil, &linear.AuthError{Message: "authentication token expired or invalid: please login again"}
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
