package gateway

import (
	"context"
	"net/http"

	"localwear-storefront/internal/domain"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// AuthResult is what every login flow returns: an opaque bearer token and the user.
type AuthResult struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

// Authenticate signs in with email and password.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/admin-login", in: creds, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleLogin exchanges a Google ID token for a session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error) {
	var out AuthResult
	in := map[string]string{"idToken": idToken}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/google-login", in: in, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, call{method: http.MethodPost, path: "/auth/register", in: in, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
