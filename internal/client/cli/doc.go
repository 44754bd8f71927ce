// Package cli provides the interactive PhishWatch command-line client.
//
// It wires configuration, local storage, the backend client, the session
// manager and the logs/dashboard views behind a small REPL. Every command
// names the page it belongs to; the route guard is consulted before each
// command runs, so a session that expired or was revoked by the backend
// is noticed on the very next command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
