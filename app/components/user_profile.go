package components

import (
	"github.com/vango-dev/showcase/app/store"
	"github.com/vango-dev/showcase/pkg/vango"
	. "github.com/vango-dev/showcase/pkg/vdom"
)

// modalKey is the slot key of the overlay visibility signal.
type modalKey struct{}

// UserProfile shows the login history and either the login form or, once
// logged in, an overlay with the session's details.
//
// Submitting the form logs in and opens the overlay. The overlay's header
// button only hides it; its "Close" button logs out.
func UserProfile(o *vango.Owner) *VNode {
	st := store.MustUseUser(o)
	show := vango.Slot(o, modalKey{}, func() *vango.Signal[bool] {
		return vango.NewSignal(o, false)
	})

	login := func(fd FormData) {
		st.Login(store.SessionFromForm(fd))
		show.Set(true)
	}
	logout := func() {
		st.Logout()
		show.Set(false)
	}

	var body *VNode
	if cur, ok := st.Current(); ok {
		body = Div(
			When(show.Get(), func() *VNode {
				return sessionModal(cur, func() { show.Set(false) }, logout)
			}),
		)
	} else {
		body = loginForm(login)
	}

	return Div(Class("user-profile"),
		LoginCards(o.Child("cards")),
		body,
	)
}

// sessionModal renders the overlay with the current session.
func sessionModal(s store.Session, hide, logout func()) *VNode {
	return Div(Class("modal-backdrop"),
		Dialog(Class("modal"), Open(true), Role("dialog"), AriaModal(true),
			Div(Class("modal-header"),
				H5(Class("modal-title"), "Modal title"),
				Button(Class("btn-close"), Type("button"), AriaLabel("Hide"), OnClick(hide), "×"),
			),
			Div(Class("modal-body"),
				P("Name: "+s.Name),
				P("Age: "+s.Age.String()),
				P("Email: "+s.Email),
			),
			Div(Class("modal-footer"),
				Button(Class("btn", "btn-secondary"), Type("button"), OnClick(logout), "Close"),
			),
		),
	)
}

// loginForm renders the anonymous state. The password and checkbox are
// collected but never read.
func loginForm(onSubmit func(FormData)) *VNode {
	return Form(Class("login-form"), OnSubmit(onSubmit),
		formGroup("formEmail", "Email address",
			Input(ID("formEmail"), Name("email"), Type("email"), Placeholder("Enter email"), Autocomplete("email")),
			Small(Class("text-muted"), "We'll never share your email with anyone else."),
		),
		formGroup("formName", "Name",
			Input(ID("formName"), Name("name"), Type("text"), Placeholder("Enter name")),
		),
		formGroup("formAge", "Age",
			Input(ID("formAge"), Name("age"), Type("text"), Placeholder("Enter age")),
		),
		formGroup("formPassword", "Password",
			Input(ID("formPassword"), Name("password"), Type("password"), Placeholder("Password")),
		),
		Div(Class("mb-3", "form-check"),
			Input(ID("formBasicCheckbox"), Name("remember"), Type("checkbox"), Class("form-check-input")),
			Label(For("formBasicCheckbox"), Class("form-check-label"), "Check me out"),
		),
		Button(Class("btn", "btn-primary"), Type("submit"), "Submit"),
	)
}

func formGroup(id, label string, controls ...any) *VNode {
	args := []any{Class("mb-3"), Label(For(id), Class("form-label"), label)}
	return Div(append(args, controls...)...)
}
