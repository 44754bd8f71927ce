package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/phishwatch/internal/client/session"
)

type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Sessions is what a view needs from the session manager.
type Sessions interface {
	Current(ctx context.Context) session.Session
	Subscribe(fn func(session.Session)) (unsubscribe func())
}

// epoch counts logouts so a load can tell whether the session it started
// under is still the one in effect when the response arrives.
type epoch struct {
	mu          sync.Mutex
	n           uint64
	onLogout    func()
	unsubscribe func()
}

func watchLogout(s Sessions, onLogout func()) *epoch {
	e := &epoch{onLogout: onLogout}
	e.unsubscribe = s.Subscribe(func(cur session.Session) {
		if cur.LoggedIn {
			return
		}
		e.mu.Lock()
		e.n++
		e.mu.Unlock()
		if e.onLogout != nil {
			e.onLogout()
		}
	})
	return e
}

func (e *epoch) current() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.n
}

func (e *epoch) stop() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}
