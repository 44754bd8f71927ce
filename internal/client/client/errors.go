package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/phishwatch/internal/common"
)

var (
	// ErrUnavailable marks transport failures and timeouts. Retrying may help.
	ErrUnavailable = errors.New("server unavailable")

	// ErrServer marks non-2xx responses without a more specific meaning.
	ErrServer = errors.New("server error")
)

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Detail string
	kind   error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d): %s", e.kind, e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return common.ErrValidation
	default:
		return ErrServer
	}
}

// newAPIError builds an APIError from a response body. The backend sends
// {"detail": "..."} or, for request validation, {"detail": [{"msg": ...}]}.
func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Detail: detailFrom(status, body), kind: kindForStatus(status)}
}

func detailFrom(status int, body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return strings.ToLower(text)
	}
	return "unexpected response"
}

// Detail extracts a user-facing message from err: the backend detail for
// API errors, err.Error() otherwise.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}
