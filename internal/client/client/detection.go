package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
	"github.com/dmitrijs2005/phishwatch/internal/common"
)

// MaxEMLSize is the largest .eml upload accepted.
const MaxEMLSize = 2 << 20

func (c *HTTPClient) Dashboard(ctx context.Context) (models.Summary, error) {
	var s models.Summary
	err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &s)
	return s, err
}

func (c *HTTPClient) Logs(ctx context.Context) ([]models.Record, error) {
	records := make([]models.Record, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/logs", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *HTTPClient) Predict(ctx context.Context, url string) (models.Prediction, error) {
	var p models.Prediction
	err := c.doJSON(ctx, http.MethodPost, "/predict", map[string]string{"url": url}, &p)
	return p, err
}

func (c *HTTPClient) Rescan(ctx context.Context, url string) (models.Prediction, error) {
	var p models.Prediction
	err := c.doJSON(ctx, http.MethodPost, "/rescan", map[string]string{"url": url}, &p)
	return p, err
}

func (c *HTTPClient) Quarantine(ctx context.Context) ([]models.QuarantinedEmail, error) {
	emails := make([]models.QuarantinedEmail, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/quarantine", nil, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func (c *HTTPClient) Feedback(ctx context.Context, emailID int64, isPhishing bool) error {
	body := struct {
		EmailID    int64 `json:"email_id"`
		IsPhishing bool  `json:"is_phishing"`
	}{emailID, isPhishing}
	return c.doJSON(ctx, http.MethodPost, "/feedback", body, nil)
}

func (c *HTTPClient) ScanInbox(ctx context.Context) (models.InboxScan, error) {
	var s models.InboxScan
	err := c.doJSON(ctx, http.MethodPost, "/scan-inbox", nil, &s)
	return s, err
}

// ValidateEML checks an upload before any request is made.
func ValidateEML(filename string, size int) error {
	if !strings.HasSuffix(filename, ".eml") {
		return fmt.Errorf("%w: %q is not an .eml file", common.ErrValidation, filename)
	}
	if size > MaxEMLSize {
		return fmt.Errorf("%w: file is %d bytes, limit is %d", common.ErrValidation, size, MaxEMLSize)
	}
	return nil
}

func (c *HTTPClient) ScanEML(ctx context.Context, filename string, content []byte) (models.EMLScan, error) {
	var res models.EMLScan
	if err := ValidateEML(filename, len(content)); err != nil {
		return res, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("eml_file", filename)
	if err != nil {
		return res, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return res, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return res, fmt.Errorf("build upload: %w", err)
	}

	err = c.do(ctx, http.MethodPost, "/scan-eml", &buf, mw.FormDataContentType(), &res)
	return res, err
}

func (c *HTTPClient) Chat(ctx context.Context, message string) (string, error) {
	var resp struct {
		Reply string `json:"reply"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/chatbot", map[string]string{"message": message}, &resp)
	return resp.Reply, err
}
