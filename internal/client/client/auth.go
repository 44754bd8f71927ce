package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Login exchanges credentials for a bearer token. The backend expects an
// OAuth2 password form.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	err := c.do(ctx, http.MethodPost, "/login", strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("%w: login response has no access token", ErrServer)
	}
	if resp.TokenType != "" && !strings.EqualFold(resp.TokenType, "bearer") {
		return "", fmt.Errorf("%w: unsupported token type %q", ErrServer, resp.TokenType)
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, password string) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/signup", map[string]string{"email": email, "password": password}, &resp)
	return resp.Message, err
}

// Logout tells the backend to drop server-side session data. A backend
// that already considers the caller logged out is not an error.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/logout", nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		return nil
	}
	return err
}

func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/request-password-reset", map[string]string{"email": email}, &resp)
	return resp.Message, err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/reset-password",
		map[string]string{"token": token, "new_password": newPassword}, &resp)
	return resp.Message, err
}
