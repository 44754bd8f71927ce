// Package client talks to the phishing-detection REST backend.
//
// Every request carries the session's bearer credential when one exists
// and a fresh X-Request-ID. Responses are mapped onto a small error
// vocabulary:
//
//   - transport failures and timeouts wrap ErrUnavailable (retryable);
//   - 401 wraps common.ErrUnauthorized and invalidates the session;
//   - 403 wraps common.ErrForbidden, 404 common.ErrNotFound,
//     400/422 common.ErrValidation;
//   - anything else non-2xx wraps ErrServer.
//
// Non-2xx responses surface as *APIError carrying the backend's "detail"
// message when it sent one.
package client
