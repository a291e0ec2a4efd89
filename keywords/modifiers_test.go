package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsParameterModifier(t *testing.T) {
	for _, word := range []string{"vararg", "noinline", "crossinline", "val", "var", "private", "override"} {
		assert.True(t, IsParameterModifier(word), word)
	}
	for _, word := range []string{"items", "fun", "init", ""} {
		assert.False(t, IsParameterModifier(word), word)
	}
}
