package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/render"
	"github.com/vango-dev/showcase/pkg/session"
	"github.com/vango-dev/showcase/pkg/vdom"
)

const maxFormBytes = 64 * 1024

// handlePage renders a full document for the requested location. A known
// cookie reuses its instance so navigation keeps mounted state.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	target := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	inst, created, err := s.instanceFor(w, r, target)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ev := &Event{InstanceID: inst.ID(), Kind: KindLoad, Transport: TransportHTTP, Target: target}
	html, err := s.process(r.Context(), inst, ev, func() (string, error) {
		if created {
			return inst.Render()
		}
		return inst.Navigate(target)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	page := render.PageData{
		Body:   vdom.Raw(html),
		Title:  s.config.Title,
		Path:   inst.Location(),
		Styles: s.config.Styles,
		Lang:   s.config.Lang,
	}
	if err := render.NewRenderer(s.rendererConfig()).RenderPage(&buf, page); err != nil {
		s.writeError(w, err)
		return
	}

	status := http.StatusOK
	if ev.NotFound {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// handleEvent runs a form submission without JavaScript and redirects back
// to the instance's location.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.lookup(r)
	if !ok {
		s.writeError(w, vangoerrors.New("E010").WithDetail("no live instance for this browser"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, vangoerrors.New("E060").WithDetail("unreadable form body").Wrap(err))
		return
	}

	q := r.URL.Query()
	hid, name := q.Get("hid"), q.Get("ev")
	if hid == "" || name == "" {
		s.writeError(w, vangoerrors.New("E060").WithDetail("hid and ev are required"))
		return
	}

	ev := &Event{InstanceID: inst.ID(), Kind: KindEvent, Transport: TransportHTTP, HID: hid, Name: name}
	_, err := s.process(r.Context(), inst, ev, func() (string, error) {
		html, _, err := inst.Dispatch(hid, name, vdom.FormDataFromValues(r.PostForm))
		return html, err
	})
	if err != nil && !errors.Is(err, ErrHandlerNotFound) {
		s.writeError(w, err)
		return
	}

	http.Redirect(w, r, inst.Location(), http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthReport{
		Status:    "ok",
		Instances: s.instances.Stats(),
	})
}

// healthReport is the body of the health endpoint.
type healthReport struct {
	Status    string        `json:"status"`
	Instances session.Stats `json:"instances"`
}

// instanceFor returns the instance bound to the request cookie, creating
// one at location when there is none.
func (s *Server) instanceFor(w http.ResponseWriter, r *http.Request, location string) (*Instance, bool, error) {
	if inst, ok := s.lookup(r); ok {
		return inst, false, nil
	}

	id, inst, err := s.instances.Create(clientIP(r), func(id string) (*Instance, error) {
		return NewInstance(id, s.root, location, s.rendererConfig())
	})
	if err != nil {
		return nil, false, err
	}
	if s.observer != nil {
		s.observer.InstanceCreated()
	}
	http.SetCookie(w, s.config.cookie(id))
	return inst, true, nil
}

func (s *Server) lookup(r *http.Request) (*Instance, bool) {
	c, err := r.Cookie(s.config.CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	return s.instances.Get(c.Value)
}

// process runs work through the middleware chain and records its outcome
// on ev.
func (s *Server) process(ctx context.Context, inst *Instance, ev *Event, work func() (string, error)) (string, error) {
	var html string
	final := func(context.Context) error {
		out, err := work()
		ev.Path = inst.Location()
		ev.NotFound = inst.NotFound()
		if err != nil {
			return err
		}
		html = out
		ev.Bytes = len(out)
		return nil
	}

	if err := chain(s.middleware, ev, final)(ctx); err != nil {
		s.logger.Warn("event failed",
			"instance_id", ev.InstanceID,
			"kind", string(ev.Kind),
			"transport", string(ev.Transport),
			"error", err)
		return "", err
	}
	return html, nil
}

// writeError maps err to its HTTP status. Server errors hide their detail.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := vangoerrors.StatusOf(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = http.StatusText(status)
	}
	http.Error(w, msg, status)
}
