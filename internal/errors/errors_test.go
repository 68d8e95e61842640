package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildErrorMessage(t *testing.T) {
	e := New(CategoryConfig, SeverityFatal, "bad value")
	assert.Equal(t, "config (fatal): bad value", e.Error())

	wrapped := Wrap(stderrors.New("underlying"), CategoryTemplate, SeverityError, "load failed")
	assert.Equal(t, "template (error): load failed: underlying", wrapped.Error())
}

func TestBuildErrorUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	e := Wrap(cause, CategoryContent, SeverityWarning, "context")
	assert.ErrorIs(t, e, cause)
}

func TestClassificationThroughWrapping(t *testing.T) {
	be := Wrap(stderrors.New("disk full"), CategoryFileSystem, SeverityFatal, "write page")
	outer := fmt.Errorf("stage render_items: %w", be)

	assert.True(t, IsCategory(outer, CategoryFileSystem))
	assert.False(t, IsCategory(outer, CategoryTemplate))
	assert.True(t, IsFatal(outer))
	assert.Equal(t, CategoryFileSystem, GetCategory(outer))
}

func TestClassificationPlainError(t *testing.T) {
	err := stderrors.New("plain")
	assert.False(t, IsCategory(err, CategoryConfig))
	assert.False(t, IsFatal(err))
	assert.Equal(t, CategoryInternal, GetCategory(err))
}

func TestWithContext(t *testing.T) {
	e := New(CategoryFileSystem, SeverityFatal, "mkdir").
		WithContext("dir", "/tmp/out").
		WithContext("attempt", 1)
	require.NotNil(t, e.Context)
	assert.Equal(t, "/tmp/out", e.Context["dir"])
	assert.Equal(t, 1, e.Context["attempt"])
}
