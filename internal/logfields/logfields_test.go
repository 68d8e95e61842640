package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrKeys(t *testing.T) {
	assert.Equal(t, KeyItem, Item("a").Key)
	assert.Equal(t, KeyStage, Stage("render_items").Key)
	assert.Equal(t, KeyCount, Count(3).Key)
	assert.Equal(t, KeyOutput, Output("/tmp/out").Key)
}

func TestErrorAttr(t *testing.T) {
	attr := Error(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())

	assert.Equal(t, "", Error(nil).Value.String())
}
