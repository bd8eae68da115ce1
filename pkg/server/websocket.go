package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/router"
	"github.com/vango-dev/showcase/pkg/vdom"
)

// Frame types on the live channel.
const (
	frameNav    = "nav"
	frameEvent  = "event"
	framePing   = "ping"
	frameRender = "render"
	frameError  = "error"
	framePong   = "pong"
)

// clientFrame is a message from the thin client.
type clientFrame struct {
	T    string            `json:"t"`
	Path string            `json:"path,omitempty"`

	// Replace marks a nav the browser already put in its history (back and
	// forward buttons).
	Replace bool `json:"replace,omitempty"`

	HID  string            `json:"hid,omitempty"`
	Ev   string            `json:"ev,omitempty"`
	Form map[string]string `json:"form,omitempty"`
}

// serverFrame is a message to the thin client.
type serverFrame struct {
	T       string `json:"t"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
	HTML    string `json:"html,omitempty"`
	Code string `json:"code,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// handleLive upgrades to a WebSocket bound to the cookie's instance, sends
// the current render and then serves frames until the connection drops.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.lookup(r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.wsError("upgrade")
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if !ok {
		_ = s.writeFrame(conn, errorFrame(vangoerrors.New("E010").WithDetail("no live instance for this browser")))
		return
	}

	inst.attach(conn)
	defer inst.detach(conn)
	conn.SetReadLimit(s.config.MaxMessageSize)

	logger := s.logger.With("instance_id", inst.ID())
	logger.Debug("live connection opened")

	html := inst.HTML()
	if html == "" {
		if html, err = inst.Render(); err != nil {
			_ = s.writeFrame(conn, errorFrame(err))
			return
		}
	}
	if err := s.writeFrame(conn, serverFrame{T: frameRender, Path: inst.Location(), HTML: html}); err != nil {
		s.wsError("write")
		return
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.config.WSReadTimeout))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived) {
				s.wsError("read")
				logger.Debug("live connection read error", "error", err)
			}
			return
		}

		// Every message counts as use so an instance with a live
		// connection is never expired as idle.
		if !s.instances.Touch(inst.ID()) {
			_ = s.writeFrame(conn, errorFrame(closedError(inst.ID())))
			return
		}

		reply, done := s.handleFrame(r.Context(), inst, msg)
		if reply.T == "" {
			continue
		}
		if err := s.writeFrame(conn, reply); err != nil {
			s.wsError("write")
			logger.Debug("live connection write error", "error", err)
			return
		}
		if done {
			return
		}
	}
}

// handleFrame runs one client frame and returns the reply. An event that
// changed no state gets an empty reply, which is not sent. done is set when
// the instance is gone and the connection should end.
func (s *Server) handleFrame(ctx context.Context, inst *Instance, msg []byte) (reply serverFrame, done bool) {
	var f clientFrame
	if err := json.Unmarshal(msg, &f); err != nil {
		s.wsError("decode")
		return errorFrame(vangoerrors.New("E060").WithDetail("frame is not valid JSON").Wrap(err)), false
	}

	var (
		ev      *Event
		work    func() (string, error)
		changed = true
	)
	switch f.T {
	case framePing:
		return serverFrame{T: framePong}, false
	case frameNav:
		ev = &Event{InstanceID: inst.ID(), Kind: KindNavigate, Transport: TransportWebSocket, Target: f.Path}
		work = func() (string, error) {
			if f.Replace {
				return inst.Navigate(f.Path, router.WithReplace())
			}
			return inst.Navigate(f.Path)
		}
	case frameEvent:
		if f.HID == "" || f.Ev == "" {
			return errorFrame(vangoerrors.New("E060").WithDetail("event frame needs hid and ev")), false
		}
		ev = &Event{InstanceID: inst.ID(), Kind: KindEvent, Transport: TransportWebSocket, HID: f.HID, Name: f.Ev}
		work = func() (html string, err error) {
			html, changed, err = inst.Dispatch(f.HID, f.Ev, vdom.FormData(f.Form))
			return html, err
		}
	default:
		s.wsError("decode")
		return errorFrame(vangoerrors.New("E060").WithDetailf("unknown frame type %q", f.T)), false
	}

	html, err := s.process(ctx, inst, ev, work)
	if err != nil {
		return errorFrame(err), errors.Is(err, ErrInstanceNotFound)
	}
	if !changed {
		return serverFrame{}, false
	}
	return serverFrame{T: frameRender, Path: inst.Location(), Replace: f.T == frameNav && inst.Replaced(), HTML: html}, false
}

func (s *Server) writeFrame(conn *websocket.Conn, f serverFrame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(s.config.WSWriteTimeout))
	return conn.WriteJSON(f)
}

func (s *Server) wsError(kind string) {
	if s.observer != nil {
		s.observer.WebSocketError(kind)
	}
}

func errorFrame(err error) serverFrame {
	code := vangoerrors.Code(err)
	if code == "" {
		code = "E000"
	}
	return serverFrame{T: frameError, Code: code, Msg: err.Error()}
}
