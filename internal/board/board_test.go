package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	b := New(10, 5, []string{"#FFFFFF"}, "")

	assert.True(t, b.Contains(0, 0))
	assert.True(t, b.Contains(9, 4))
	assert.False(t, b.Contains(10, 0))
	assert.False(t, b.Contains(0, 5))
	assert.False(t, b.Contains(-1, 0))
}

func TestInfoAndData(t *testing.T) {
	palette := []string{"#FFFFFF", "#000000"}
	b := New(10, 5, palette, "key")

	info := b.Info()
	assert.Equal(t, 10, info.Width)
	assert.Equal(t, 5, info.Height)
	assert.Equal(t, palette, info.Palette)
	assert.Equal(t, "key", info.CaptchaKey)

	assert.Len(t, b.Data(), 50)
}
