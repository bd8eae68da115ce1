package server

import (
	"net/http"
	"time"

	"github.com/vango-dev/showcase/pkg/session"
)

// Transport endpoints served next to the application pages.
const (
	ClientScriptPath = "/_showcase/client.js"
	LivePath         = "/_showcase/live"
	EventPath        = "/_showcase/event"
	HealthPath       = "/healthz"
	MetricsPath      = "/metrics"
)

// DefaultCookieName binds a browser to its instance.
const DefaultCookieName = "showcase_sid"

// Config holds server configuration.
type Config struct {
	// Address is the listen address. Default: ":8080".
	Address string

	// Title is the document title of rendered pages.
	Title string

	// Lang is the html lang attribute. Default: "en".
	Lang string

	// Styles are inlined into the head of every page.
	Styles []string

	// Pretty renders indented HTML. Development only.
	Pretty bool

	// CookieName names the instance cookie. Default: "showcase_sid".
	CookieName string

	// SecureCookies sets the Secure flag on the instance cookie.
	SecureCookies bool

	// AllowedOrigins lists origins accepted on the WebSocket upgrade in
	// addition to the request's own host.
	AllowedOrigins []string

	// TrustProxy takes the client address from X-Forwarded-For or X-Real-IP.
	// Enable it only behind a proxy that overwrites those headers, since the
	// per-IP instance limit keys on this address.
	TrustProxy bool

	// HTTP server timeouts.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10s.
	ShutdownTimeout time.Duration

	// WebSocket limits.
	WSReadTimeout  time.Duration
	WSWriteTimeout time.Duration
	MaxMessageSize int64

	// Session configures the instance manager.
	Session session.Config
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           ":8080",
		Title:             "Showcase",
		Lang:              "en",
		CookieName:        DefaultCookieName,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		WSReadTimeout:     60 * time.Second,
		WSWriteTimeout:    10 * time.Second,
		MaxMessageSize:    64 * 1024,
		Session:           session.DefaultConfig(),
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.CookieName == "" {
		c.CookieName = d.CookieName
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.WSReadTimeout == 0 {
		c.WSReadTimeout = d.WSReadTimeout
	}
	if c.WSWriteTimeout == 0 {
		c.WSWriteTimeout = d.WSWriteTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.Session == (session.Config{}) {
		c.Session = d.Session
	}
	return c
}

// cookie builds the instance cookie for id.
func (c Config) cookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     c.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
