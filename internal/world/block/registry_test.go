package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	rgb, ok := Color(FirstColor)
	assert.True(t, ok)
	assert.Equal(t, uint32(0xff0000), rgb, "первый цвет палитры — красный")

	rgb, ok = Color(LastColor)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x888888), rgb)

	_, ok = Color(0)
	assert.False(t, ok, "индекс 0 вне палитры")
	_, ok = Color(10)
	assert.False(t, ok)
}

func TestPaletteAndLabels(t *testing.T) {
	assert.Len(t, Palette(), 9)
	assert.Equal(t, "Selected Block: 4", Label(4))
	assert.Equal(t, "green", ColorName(4))
	assert.Equal(t, "unknown", ColorName(42))
	assert.True(t, Valid(DefaultColor))
}
