// Package views holds the state behind the logs and dashboard screens.
//
// A view loads data from the backend, keeps it together with the derived
// filtered set, trend series and chart handle, and exposes a State so the
// caller can show loading and error feedback. Responses that arrive after
// the user logged out are dropped.
package views
