package store

import (
	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Store holds the current session and the login history of one provider.
// Both live in signals, so every change marks the instance for re-render.
type Store struct {
	current *vango.Signal[*Session]
	history *vango.Signal[[]Session]
}

// New creates an empty Store owned by o.
func New(o *vango.Owner) *Store {
	return &Store{
		current: vango.NewSignal[*Session](o, nil),
		history: vango.NewSignal[[]Session](o, nil),
	}
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	cur := s.current.Get()
	if cur == nil {
		return Session{}, false
	}
	return *cur, true
}

// LoggedIn reports whether a session is active.
func (s *Store) LoggedIn() bool {
	return s.current.Get() != nil
}

// History returns a copy of every session ever logged in, oldest first.
func (s *Store) History() []Session {
	h := s.history.Get()
	out := make([]Session, len(h))
	copy(out, h)
	return out
}

// Login makes candidate the current session and appends it to the history.
// A login while another session is active replaces it.
func (s *Store) Login(candidate Session) {
	c := candidate
	s.current.Set(&c)
	s.history.Update(func(h []Session) []Session {
		next := make([]Session, len(h), len(h)+1)
		copy(next, h)
		return append(next, candidate)
	})
}

// Logout clears the current session. The history is left untouched.
func (s *Store) Logout() {
	s.current.Set(nil)
}

// storeKey is the slot key of the provider's Store.
type storeKey struct{}

var userContext = vango.CreateContext[*Store]("UserProvider")

// UserProvider creates the Store for its scope and renders children below
// it. The Store is created on first render and lives until o is disposed;
// a later mount gets a fresh one, and sibling providers never share.
func UserProvider(o *vango.Owner, children func(*vango.Owner) *vdom.VNode) *vdom.VNode {
	st := vango.Slot(o, storeKey{}, func() *Store { return New(o) })
	userContext.Provide(o, st)
	return children(o.Child("user"))
}

// UseUser returns the Store of the nearest UserProvider above o. Outside a
// provider it returns an E001 error that matches vango.ErrNoProvider.
func UseUser(o *vango.Owner) (*Store, error) {
	st, err := userContext.Use(o)
	if err != nil {
		return nil, vangoerrors.New("E001").
			WithDetail("useUser must be used within a UserProvider").
			WithSuggestion("Wrap the component in store.UserProvider").
			Wrap(err)
	}
	return st, nil
}

// MustUseUser is like UseUser but panics outside a provider.
func MustUseUser(o *vango.Owner) *Store {
	st, err := UseUser(o)
	if err != nil {
		panic(err)
	}
	return st
}
