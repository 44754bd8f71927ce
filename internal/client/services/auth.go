// Package services contains application services for the PhishWatch client.
// This file defines the authentication service: login, signup, logout,
// password reset and the liveness probe.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/client/session"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

// AuthAPI is the slice of the backend client the auth service uses.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
	Ping(ctx context.Context) (models.Health, error)
}

// Sessions is the slice of the session manager the auth service drives.
type Sessions interface {
	SignIn(ctx context.Context, token, username string) error
	SetAuth(ctx context.Context, token string) error
	Current(ctx context.Context) session.Session
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and install the returned token.
//   - Signup: create an account that awaits admin approval.
//   - Logout: end the session locally; the backend is told on a best-effort basis.
//   - RequestPasswordReset / ResetPassword: the emailed reset flow.
//   - Ping: check backend liveness.
//
// Password slices are wiped once the request has been sent.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Session, error)
	Signup(ctx context.Context, email string, password []byte) (string, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token string, newPassword []byte) (string, error)
	Ping(ctx context.Context) (models.Health, error)
}

type authService struct {
	api      AuthAPI
	sessions Sessions
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client
// and session manager.
func NewAuthService(api AuthAPI, sessions Sessions, log logging.Logger) AuthService {
	return &authService{api: api, sessions: sessions, log: log.With("service", "auth")}
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("%w: %q is not an email address", common.ErrValidation, email)
	}
	return nil
}

// Login authenticates and starts a session. A token the backend issued but
// that does not decode or is already expired is reported as an error and
// leaves the user logged out.
func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Session, error) {
	defer common.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		return session.Session{}, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	token, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		return session.Session{}, fmt.Errorf("login error: %w", err)
	}
	if err := a.sessions.SignIn(ctx, token, username); err != nil {
		return session.Session{}, fmt.Errorf("login error: %w", err)
	}
	return a.sessions.Current(ctx), nil
}

func (a *authService) Signup(ctx context.Context, email string, password []byte) (string, error) {
	defer common.WipeByteArray(password)

	if err := validateEmail(email); err != nil {
		return "", err
	}
	if len(password) == 0 {
		return "", fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return a.api.Signup(ctx, email, string(password))
}

// Logout always ends the local session. A failure to reach the backend is
// only logged.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "backend logout failed", "error", err)
	}
	return a.sessions.SetAuth(ctx, "")
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	return a.api.RequestPasswordReset(ctx, email)
}

func (a *authService) ResetPassword(ctx context.Context, token string, newPassword []byte) (string, error) {
	defer common.WipeByteArray(newPassword)

	if token == "" || len(newPassword) == 0 {
		return "", fmt.Errorf("%w: reset token and new password are required", common.ErrValidation)
	}
	return a.api.ResetPassword(ctx, token, string(newPassword))
}

// Ping proxies a liveness check to the backend.
func (a *authService) Ping(ctx context.Context) (models.Health, error) {
	return a.api.Ping(ctx)
}
