package server

import (
	"fmt"
	"sync"

	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vango"
	"github.com/vango-dev/showcase/pkg/vdom"
)

type counterState struct {
	count *vango.Signal[int]
	name  *vango.Signal[string]
}

// testRoot renders a counter page at "/", a page that panics at "/boom"
// and a not-found page. In the counter page the button is h1 and the form h2.
func testRoot() Root {
	r := router.New().
		Page("/", func(o *vango.Owner) *vdom.VNode {
			st := vango.Slot(o, "state", func() *counterState {
				return &counterState{
					count: vango.NewSignal(o, 0),
					name:  vango.NewSignal(o, ""),
				}
			})
			return vdom.Div(
				vdom.H1("Home"),
				vdom.P(fmt.Sprintf("count=%d", st.count.Get())),
				vdom.P(fmt.Sprintf("name=%s", st.name.Get())),
				vdom.Button(vdom.OnClick(func() {
					st.count.Update(func(n int) int { return n + 1 })
				}), "inc"),
				vdom.Form(
					vdom.OnSubmit(func(fd vdom.FormData) { st.name.Set(fd.Get("name")) }),
					vdom.Input(vdom.Name("name")),
				),
			)
		}).
		Page("/boom", func(o *vango.Owner) *vdom.VNode {
			panic("boom")
		}).
		NotFound(func(o *vango.Owner) *vdom.VNode {
			return vdom.H1("missing")
		})

	return func(o *vango.Owner) *vdom.VNode {
		return vdom.Div(router.Routes(o.Child("routes"), r))
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	created  int
	closed   []string
	wsErrors []string
}

func (o *recordingObserver) InstanceCreated() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.created++
}

func (o *recordingObserver) InstanceClosed(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = append(o.closed, reason)
}

func (o *recordingObserver) WebSocketError(kind string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.wsErrors = append(o.wsErrors, kind)
}

func (o *recordingObserver) snapshot() (int, []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.created, append([]string(nil), o.closed...)
}
