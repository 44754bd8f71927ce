// Package guard decides whether a navigation target may be shown for the
// current session, and where to send the user otherwise.
package guard

import (
	"context"

	"github.com/dmitrijs2005/phishwatch/internal/client/session"
)

const (
	LoginPath = "/"
	HomePath  = "/dashboard"
)

// Access is the requirement attached to a path.
type Access int

const (
	Public Access = iota
	Protected
	AdminOnly
)

// Reason explains a redirect.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonUnauthenticated Reason = "login required"
	ReasonForbidden       Reason = "admin role required"
	ReasonUnknownPath     Reason = "unknown page"
)

// Decision is the outcome for one navigation.
type Decision struct {
	Allowed  bool
	Redirect string
	Reason   Reason
}

// Routes maps every known path to its access requirement.
var Routes = map[string]Access{
	"/":                Public,
	"/signup":          Public,
	"/forgot-password": Public,
	"/reset-password":  Public,

	"/dashboard":    Protected,
	"/predict":      Protected,
	"/reports":      Protected,
	"/email-logs":   Protected,
	"/scan-inbox":   Protected,
	"/upload-email": Protected,
	"/quarantine":   Protected,
	"/chat":         Protected,
	"/exports":      Protected,

	"/admin/users": AdminOnly,
	"/admin/tips":  AdminOnly,
}

// SessionSource yields the current session. *session.Manager satisfies it;
// reading through it expires stale credentials as a side effect.
type SessionSource interface {
	Current(ctx context.Context) session.Session
}

type Guard struct {
	sessions SessionSource
	routes   map[string]Access
}

func New(sessions SessionSource) *Guard {
	return &Guard{sessions: sessions, routes: Routes}
}

// Allow evaluates path against the session as it is right now.
func (g *Guard) Allow(ctx context.Context, path string) Decision {
	access, known := g.routes[path]
	if !known {
		return Decision{Redirect: LoginPath, Reason: ReasonUnknownPath}
	}
	if access == Public {
		return Decision{Allowed: true}
	}

	s := g.sessions.Current(ctx)
	switch {
	case !s.LoggedIn:
		return Decision{Redirect: LoginPath, Reason: ReasonUnauthenticated}
	case access == AdminOnly && !s.Role.IsAdmin():
		return Decision{Redirect: HomePath, Reason: ReasonForbidden}
	default:
		return Decision{Allowed: true}
	}
}
