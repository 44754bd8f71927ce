package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/phishwatch/internal/common"
)

// firstArgOrPrompt returns args[0] or asks for the value.
func (a *App) firstArgOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) login(ctx context.Context, args []string) error {
	email, err := a.firstArgOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.printf("Logged in as %s (%s)\n", s.DisplayName(), s.Role)
	return nil
}

func (a *App) signup(ctx context.Context, args []string) error {
	email, err := a.firstArgOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.out, "Repeat password")
	if err != nil {
		common.WipeByteArray(password)
		return err
	}
	same := string(password) == string(confirm)
	common.WipeByteArray(confirm)
	if !same {
		common.WipeByteArray(password)
		return fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	msg, err := a.auth.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}

func (a *App) forgotPassword(ctx context.Context, args []string) error {
	email, err := a.firstArgOrPrompt(args, "Enter email")
	if err != nil {
		return err
	}
	msg, err := a.auth.RequestPasswordReset(ctx, email)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}

func (a *App) resetPassword(ctx context.Context, args []string) error {
	token, err := a.firstArgOrPrompt(args, "Enter reset token")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}
	msg, err := a.auth.ResetPassword(ctx, token, password)
	if err != nil {
		return err
	}
	a.printf("%s\n", msg)
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if !a.sessions.Current(ctx).LoggedIn {
		a.printf("Not logged in.\n")
		return nil
	}
	a.loggingOut.Store(true)
	defer a.loggingOut.Store(false)

	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out.\n")
	return nil
}

func (a *App) whoami(ctx context.Context, _ []string) error {
	s := a.sessions.Current(ctx)
	if !s.LoggedIn {
		a.printf("Not logged in.\n")
		return nil
	}
	expires := "never"
	if !s.ExpiresAt.IsZero() {
		expires = s.ExpiresAt.In(a.loc).Format(a.cfg.DateTimeLayout)
	}
	a.printf("%s, role %s, session expires %s\n", s.DisplayName(), s.Role, expires)
	return nil
}

func (a *App) health(ctx context.Context, _ []string) error {
	h, err := a.auth.Ping(ctx)
	if err != nil {
		return err
	}
	a.printf("Backend %s (version %s)\n", h.Status, h.Version)
	return nil
}
