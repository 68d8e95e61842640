package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := New("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	s.Add("c")
	assert.True(t, s.Has("c"))

	s.Delete("a")
	assert.False(t, s.Has("a"))
}

func TestSetUnion(t *testing.T) {
	a := New("x", "y")
	b := New("y", "z")
	u := a.Union(b)
	assert.Len(t, u, 3)
	for _, v := range []string{"x", "y", "z"} {
		assert.True(t, u.Has(v))
	}
	// Operands unchanged.
	assert.False(t, a.Has("z"))
	assert.False(t, b.Has("x"))
}

func TestSetClone(t *testing.T) {
	orig := New(1, 2)
	clone := orig.Clone()
	clone.Add(3)
	assert.False(t, orig.Has(3))
	assert.True(t, clone.Has(1))
}
