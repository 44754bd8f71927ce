package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/phishwatch/internal/client/models"
)

type tipBody struct {
	Content string `json:"content"`
}

type userRef struct {
	UserID int64 `json:"user_id"`
}

// Tips returns the awareness tips with their ids.
func (c *HTTPClient) Tips(ctx context.Context) ([]models.Tip, error) {
	var list models.TipList
	if err := c.doJSON(ctx, http.MethodGet, "/educative-tips", nil, &list); err != nil {
		return nil, err
	}
	tips, err := list.Zip()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServer, err)
	}
	return tips, nil
}

func (c *HTTPClient) AddTip(ctx context.Context, content string) error {
	return c.doJSON(ctx, http.MethodPost, "/educative-tips", tipBody{content}, nil)
}

func (c *HTTPClient) UpdateTip(ctx context.Context, id int64, content string) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/educative-tips/%d", id), tipBody{content}, nil)
}

func (c *HTTPClient) DeleteTip(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/educative-tips/%d", id), nil, nil)
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) ApproveUser(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/admin/approve-user", userRef{id}, &resp)
	return resp.Message, err
}

func (c *HTTPClient) RejectUser(ctx context.Context, id int64) (string, error) {
	var resp messageResponse
	err := c.doJSON(ctx, http.MethodPost, "/admin/reject-user", userRef{id}, &resp)
	return resp.Message, err
}
