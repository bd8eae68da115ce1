package store

import (
	"fmt"

	"github.com/vango-dev/showcase/pkg/vdom"
)

// Session is one authenticated user. It is created on login and lives only
// in memory.
type Session struct {
	Name  string
	Age   Age
	Email string
}

// String implements fmt.Stringer for logging.
func (s Session) String() string {
	return fmt.Sprintf("%s <%s> (%s)", s.Name, s.Email, s.Age)
}

// SessionFromForm builds a candidate Session from the login form. Only the
// name, email and age fields are read; age is coerced with CoerceAge.
func SessionFromForm(fd vdom.FormData) Session {
	return Session{
		Name:  fd.Get("name"),
		Age:   CoerceAge(fd.Get("age")),
		Email: fd.Get("email"),
	}
}
