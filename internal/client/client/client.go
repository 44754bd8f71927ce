package client

import (
	"context"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
)

// Client is the backend API as used by the views and services.
type Client interface {
	Ping(ctx context.Context) (models.Health, error)

	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)

	Dashboard(ctx context.Context) (models.Summary, error)
	Logs(ctx context.Context) ([]models.Record, error)
	Predict(ctx context.Context, url string) (models.Prediction, error)
	Rescan(ctx context.Context, url string) (models.Prediction, error)

	Quarantine(ctx context.Context) ([]models.QuarantinedEmail, error)
	Feedback(ctx context.Context, emailID int64, isPhishing bool) error
	ScanInbox(ctx context.Context) (models.InboxScan, error)
	ScanEML(ctx context.Context, filename string, content []byte) (models.EMLScan, error)

	Tips(ctx context.Context) ([]models.Tip, error)
	AddTip(ctx context.Context, content string) error
	UpdateTip(ctx context.Context, id int64, content string) error
	DeleteTip(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]models.User, error)
	ApproveUser(ctx context.Context, id int64) (string, error)
	RejectUser(ctx context.Context, id int64) (string, error)

	Chat(ctx context.Context, message string) (string, error)
}

var _ Client = (*HTTPClient)(nil)
