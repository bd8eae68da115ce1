package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{"no provider", "E001", "Context read outside its provider", CategoryRuntime},
		{"handler not found", "E009", "Handler not found", CategoryRuntime},
		{"protocol error", "E060", "Malformed client frame", CategoryProtocol},
		{"config error", "E122", "Invalid config value", CategoryConfig},
		{"unknown error code", "E999", "Unknown error", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.wantCat, err.Category)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "E009: Handler not found", New("E009").Error())
	assert.Equal(t, "E001: useUser must be used within a UserProvider",
		New("E001").WithDetail("useUser must be used within a UserProvider").Error())
	assert.Equal(t, "bad thing 3", Newf(CategoryCLI, "bad thing %d", 3).Error())
}

func TestIsMatchesCode(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := fmt.Errorf("render: %w", New("E001").Wrap(sentinel))

	assert.True(t, stderrors.Is(err, New("E001")))
	assert.False(t, stderrors.Is(err, New("E009")))
	assert.True(t, stderrors.Is(err, sentinel))
	assert.Equal(t, "E001", Code(err))
	assert.Equal(t, "", Code(sentinel))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, "E120"))

	plain := stderrors.New("disk on fire")
	wrapped := FromError(plain, "E120")
	require.NotNil(t, wrapped)
	assert.Equal(t, "E120", wrapped.Code)
	assert.ErrorIs(t, wrapped, plain)

	existing := New("E060")
	assert.Same(t, existing, FromError(fmt.Errorf("ctx: %w", existing), "E120"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(New("E009")))
	assert.Equal(t, http.StatusTooManyRequests, StatusOf(New("E011")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(New("E120")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(stderrors.New("x")))
}

func TestPretty(t *testing.T) {
	err := New("E122").
		WithDetail("port must be between 0 and 65535").
		WithSuggestion("set server.port in showcase.json").
		Wrap(stderrors.New("strconv: bad digit"))

	out := err.Pretty(false)
	assert.Equal(t, "error E122: Invalid config value\n"+
		"\n  port must be between 0 and 65535\n"+
		"\n  hint: set server.port in showcase.json\n"+
		"  cause: strconv: bad digit\n", out)
	assert.NotContains(t, out, "\033[")

	colored := err.Pretty(true)
	assert.Contains(t, colored, "\033[31m\033[1merror E122:\033[0m")
	assert.Contains(t, colored, "\033[36mhint:\033[0m")

	assert.Equal(t, "error: boom\n", Newf(CategoryRuntime, "boom").Pretty(false))
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	assert.Equal(t, []string{"one two", "three", "four"}, lines)
	assert.Nil(t, wrapText("   ", 10))
}
