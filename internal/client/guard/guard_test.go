package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/phishwatch/internal/client/session"
)

type fakeSessions struct {
	s     session.Session
	reads int
}

func (f *fakeSessions) Current(context.Context) session.Session {
	f.reads++
	return f.s
}

func TestAllow(t *testing.T) {
	anon := session.Session{}
	user := session.Session{LoggedIn: true, Role: session.RoleUser}
	admin := session.Session{LoggedIn: true, Role: session.RoleAdmin}

	tests := []struct {
		name string
		s    session.Session
		path string
		want Decision
	}{
		{"public anon", anon, "/signup", Decision{Allowed: true}},
		{"public logged in", user, "/", Decision{Allowed: true}},
		{"protected anon", anon, "/dashboard", Decision{Redirect: "/", Reason: ReasonUnauthenticated}},
		{"protected user", user, "/email-logs", Decision{Allowed: true}},
		{"admin anon", anon, "/admin/users", Decision{Redirect: "/", Reason: ReasonUnauthenticated}},
		{"admin as user", user, "/admin/tips", Decision{Redirect: "/dashboard", Reason: ReasonForbidden}},
		{"admin as admin", admin, "/admin/users", Decision{Allowed: true}},
		{"protected as admin", admin, "/quarantine", Decision{Allowed: true}},
		{"unknown path", admin, "/nowhere", Decision{Redirect: "/", Reason: ReasonUnknownPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(&fakeSessions{s: tt.s})
			assert.Equal(t, tt.want, g.Allow(context.Background(), tt.path))
		})
	}
}

func TestAllow_ReevaluatesEveryCall(t *testing.T) {
	src := &fakeSessions{s: session.Session{LoggedIn: true, Role: session.RoleAdmin}}
	g := New(src)
	ctx := context.Background()

	assert.True(t, g.Allow(ctx, "/admin/users").Allowed)

	src.s = session.Session{}
	d := g.Allow(ctx, "/admin/users")
	assert.False(t, d.Allowed)
	assert.Equal(t, LoginPath, d.Redirect)
	assert.Equal(t, 2, src.reads)
}

func TestAllow_PublicDoesNotReadSession(t *testing.T) {
	src := &fakeSessions{}
	New(src).Allow(context.Background(), "/reset-password")
	assert.Zero(t, src.reads)
}
