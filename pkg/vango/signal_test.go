package vango

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalGetSet(t *testing.T) {
	root := NewOwner(nil)
	s := NewSignal(root, 1)

	assert.Equal(t, 1, s.Get())
	s.Set(2)
	assert.Equal(t, 2, s.Get())
	assert.NotZero(t, s.ID())
}

func TestSignalMarksRootDirty(t *testing.T) {
	root := NewOwner(nil)
	s := NewSignal(root.Child("c").Child("d"), "a")

	assert.False(t, root.TakeDirty())
	s.Set("a")
	assert.False(t, root.TakeDirty(), "equal value must not mark dirty")

	s.Set("b")
	assert.True(t, root.TakeDirty())
	assert.False(t, root.TakeDirty())
}

func TestSignalDisposedOwner(t *testing.T) {
	root := NewOwner(nil)
	child := root.Child("c")
	s := NewSignal(child, 0)
	child.Dispose()

	s.Set(5)
	assert.Equal(t, 5, s.Get())
	assert.False(t, root.TakeDirty())
}

func TestSignalDetached(t *testing.T) {
	s := NewSignal[[]string](nil, nil)
	s.Set([]string{"a"})
	assert.Equal(t, []string{"a"}, s.Get())
}

func TestSignalSliceEquality(t *testing.T) {
	root := NewOwner(nil)
	s := NewSignal(root, []int{1, 2})

	s.Set([]int{1, 2})
	assert.False(t, root.TakeDirty())
	s.Set([]int{1, 2, 3})
	assert.True(t, root.TakeDirty())
}

func TestSignalNaNIsAlwaysAChange(t *testing.T) {
	root := NewOwner(nil)
	s := NewSignal(root, math.NaN())

	s.Set(math.NaN())
	assert.True(t, root.TakeDirty())
}

func TestSignalWithEquals(t *testing.T) {
	root := NewOwner(nil)
	s := NewSignal(root, 10).WithEquals(func(a, b int) bool { return a/10 == b/10 })

	s.Set(15)
	assert.False(t, root.TakeDirty())
	assert.Equal(t, 10, s.Get())
}
