package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
)

// thinClientJS keeps the page live over the WebSocket. Links marked
// data-link and elements with data-on-* handlers are routed to the server;
// each render frame replaces the contents of #app.
const thinClientJS = `(function () {
  "use strict";
  var app = document.getElementById("app");
  if (!app || !window.WebSocket) return;

  var ws = null;
  var pending = [];
  var retries = 0;

  function here() { return location.pathname + location.search; }

  function connect() {
    var proto = location.protocol === "https:" ? "wss:" : "ws:";
    ws = new WebSocket(proto + "//" + location.host + "/_showcase/live");
    ws.onopen = function () {
      retries = 0;
      while (pending.length) ws.send(pending.shift());
    };
    ws.onmessage = function (msg) {
      var f;
      try { f = JSON.parse(msg.data); } catch (e) { return; }
      if (f.t === "render") {
        app.innerHTML = f.html;
        app.setAttribute("data-path", f.path);
        if (f.path && f.path !== here()) {
          if (f.replace) history.replaceState(null, "", f.path);
          else history.pushState(null, "", f.path);
        }
      } else if (f.t === "error") {
        if (f.code === "E010") { location.reload(); return; }
        console.error("[showcase] " + f.code + ": " + f.msg);
      }
    };
    ws.onclose = function () {
      ws = null;
      if (retries++ < 5) setTimeout(connect, 250 * retries);
    };
  }

  function send(frame) {
    var data = JSON.stringify(frame);
    if (ws && ws.readyState === 1) { ws.send(data); return true; }
    if (ws) { pending.push(data); return true; }
    return false;
  }

  document.addEventListener("click", function (e) {
    if (e.defaultPrevented || e.button !== 0 || e.metaKey || e.ctrlKey || e.shiftKey || e.altKey) return;
    var link = e.target.closest("a[data-link]");
    if (link && link.origin === location.origin) {
      if (send({ t: "nav", path: link.pathname + link.search })) e.preventDefault();
      return;
    }
    var el = e.target.closest("[data-on-click]");
    if (el && send({ t: "event", hid: el.getAttribute("data-hid"), ev: "click" })) e.preventDefault();
  });

  document.addEventListener("submit", function (e) {
    var form = e.target;
    if (!form.hasAttribute("data-on-submit")) return;
    var values = {};
    new FormData(form).forEach(function (v, k) { if (typeof v === "string") values[k] = v; });
    if (send({ t: "event", hid: form.getAttribute("data-hid"), ev: "submit", form: values })) e.preventDefault();
  });

  window.addEventListener("popstate", function () {
    send({ t: "nav", path: here(), replace: true });
  });

  setInterval(function () { send({ t: "ping" }); }, 25000);
  connect();
})();
`

var thinClientETag = func() string {
	sum := sha256.Sum256([]byte(thinClientJS))
	return fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:8]))
}()

func (s *Server) serveThinClient(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", thinClientETag)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if s.config.Pretty {
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	}

	if etagMatches(r.Header.Get("If-None-Match"), thinClientETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_, _ = w.Write([]byte(thinClientJS))
}

func etagMatches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, part := range strings.Split(ifNoneMatch, ",") {
		candidate := strings.TrimSpace(part)
		if candidate == "*" || candidate == etag || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
