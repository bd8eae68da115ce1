package errors

import "net/http"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Status   int
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Context read outside its provider",
		Status:   http.StatusInternalServerError,
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Component panicked during render",
		Status:   http.StatusInternalServerError,
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Event handler panicked",
		Status:   http.StatusInternalServerError,
	},
	"E009": {
		Category: CategoryRuntime,
		Message:  "Handler not found",
		Status:   http.StatusConflict,
	},

	// ============================================
	// Session Errors (E010-E019)
	// ============================================

	"E010": {
		Category: CategorySession,
		Message:  "Instance not found",
		Status:   http.StatusNotFound,
	},
	"E011": {
		Category: CategorySession,
		Message:  "Too many instances from this address",
		Status:   http.StatusTooManyRequests,
	},
	"E012": {
		Category: CategorySession,
		Message:  "Session manager stopped",
		Status:   http.StatusServiceUnavailable,
	},

	// ============================================
	// Protocol Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryProtocol,
		Message:  "Malformed client frame",
		Status:   http.StatusBadRequest,
	},
	"E061": {
		Category: CategoryProtocol,
		Message:  "Unsupported event handler signature",
		Status:   http.StatusInternalServerError,
	},

	// ============================================
	// Routing Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryRouting,
		Message:  "Invalid path",
		Status:   http.StatusBadRequest,
	},
	"E101": {
		Category: CategoryRouting,
		Message:  "Invalid route pattern",
		Status:   http.StatusInternalServerError,
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Config file unreadable",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Environment override failed",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
