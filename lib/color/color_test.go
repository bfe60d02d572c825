package color

import (
	stdcolor "image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse("#fbb4ae", 1)
	assert.NoError(t, err)
	assert.Equal(t, stdcolor.NRGBA{R: 0xfb, G: 0xb4, B: 0xae, A: 0xff}, c)

	c, err = Parse("red", 0.8)
	assert.NoError(t, err)
	assert.Equal(t, stdcolor.NRGBA{R: 0xff, A: 204}, c)

	_, err = Parse("not a color", 1)
	assert.Error(t, err)
}

func TestPick(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#fbb4ae", Pick(Pastel1, 0))
	assert.Equal(t, "#b3cde3", Pick(Pastel1, 1))
	assert.Equal(t, "#1f77b4", Pick(Tab10, 10))
	assert.Equal(t, "#000000", Pick(nil, 3))
}

