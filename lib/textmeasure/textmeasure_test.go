package textmeasure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	t.Parallel()

	r, err := NewRuler(8, 150)
	assert.NoError(t, err)

	w1, h1 := r.Measure("S")
	w2, h2 := r.Measure("infection")
	assert.Greater(t, w1, 0.)
	assert.Greater(t, w2, w1)
	assert.Equal(t, h1, h2)

	_, h3 := r.Measure("a\nb")
	assert.Greater(t, h3, h1)

	assert.Equal(t, w2, r.MaxWidth([]string{"S", "infection", ""}))
	assert.Equal(t, 0., r.MaxWidth(nil))
}
