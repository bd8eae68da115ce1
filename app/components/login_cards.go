package components

import (
	"strconv"

	"github.com/vango-dev/showcase/app/store"
	"github.com/vango-dev/showcase/pkg/vango"
	. "github.com/vango-dev/showcase/pkg/vdom"
)

// LoginCards lists every session logged in through the enclosing provider,
// oldest first, or a placeholder card when there is none.
func LoginCards(o *vango.Owner) *VNode {
	history := store.MustUseUser(o).History()

	return IfElse(len(history) == 0,
		Div(Class("card"),
			H5(Class("card-title"), "No Previous Logins"),
			Div(Class("card-body"),
				P("No login history available."),
			),
		),
		Div(Class("login-cards"),
			Range(history, func(s store.Session, i int) *VNode {
				return Div(Class("card"), Key(strconv.Itoa(i)),
					Div(Class("card-body"),
						P(s.Name),
						P(s.Email),
						P(s.Age.String()),
					),
				)
			}),
		),
	)
}
