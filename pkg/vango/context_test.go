package vango

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
)

func TestContextProvideUse(t *testing.T) {
	theme := CreateContext[string]("Theme")
	root := NewOwner(nil)
	theme.Provide(root, "dark")

	got, err := theme.Use(root.Child("a").Child("b"))
	require.NoError(t, err)
	assert.Equal(t, "dark", got)
	assert.Equal(t, "Theme", theme.Name())
}

func TestContextNearestProviderWins(t *testing.T) {
	theme := CreateContext[string]("Theme")
	root := NewOwner(nil)
	theme.Provide(root, "dark")
	inner := root.Child("inner")
	theme.Provide(inner, "light")

	assert.Equal(t, "light", theme.MustUse(inner.Child("leaf")))
	assert.Equal(t, "dark", theme.MustUse(root.Child("other")))
}

func TestContextNoProvider(t *testing.T) {
	theme := CreateContext[string]("Theme")

	got, err := theme.Use(NewOwner(nil))
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, errors.Is(err, ErrNoProvider))
	assert.Equal(t, "E001", vangoerrors.Code(err))
	assert.Contains(t, err.Error(), "Theme read outside its provider")

	_, err = theme.Use(nil)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestContextMustUsePanics(t *testing.T) {
	theme := CreateContext[int]("Count")
	assert.Panics(t, func() { theme.MustUse(NewOwner(nil)) })
}

func TestContextsDoNotCollide(t *testing.T) {
	a := CreateContext[string]("Same")
	b := CreateContext[string]("Same")
	root := NewOwner(nil)
	a.Provide(root, "a")

	_, err := b.Use(root)
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestContextProvidedValueGoneAfterDispose(t *testing.T) {
	theme := CreateContext[string]("Theme")
	root := NewOwner(nil)
	scope := root.Child("scope")
	theme.Provide(scope, "dark")
	leaf := scope.Child("leaf")
	scope.Dispose()

	_, err := theme.Use(leaf)
	assert.ErrorIs(t, err, ErrNoProvider)
}
