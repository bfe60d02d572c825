package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewer(t *testing.T) {
	t.Parallel()

	assert.True(t, Newer("v0.2.0", "0.1.9"))
	assert.True(t, Newer("v1.0.0", "0.9.12"))
	assert.True(t, Newer("v0.1.10", "0.1.9"))
	assert.False(t, Newer("v0.1.0", "0.1.0"))
	assert.False(t, Newer("v0.0.9", "0.1.0"))
	assert.False(t, Newer("nightly", "0.1.0"))
	assert.True(t, Newer("v0.1.0", ""))
}
