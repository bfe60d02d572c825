package xbrowser_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/amrviz/lib/xbrowser"
)

func TestOpenURLDisabled(t *testing.T) {
	t.Parallel()

	err := xbrowser.OpenURL(context.Background(), xos.NewEnv([]string{"BROWSER=0"}), "http://localhost:1")
	assert.NoError(t, err)
}

func TestOpenURLCommand(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "opened")
	env := xos.NewEnv([]string{"BROWSER=echo >" + out})
	err := xbrowser.OpenURL(context.Background(), env, "http://localhost:1/x")
	if !assert.NoError(t, err) {
		return
	}
	b, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:1/x\n", string(b))
}

func TestOpenURLFailure(t *testing.T) {
	t.Parallel()

	err := xbrowser.OpenURL(context.Background(), xos.NewEnv([]string{"BROWSER=false"}), "http://localhost:1")
	assert.NoError(t, err)

	err = xbrowser.OpenURL(context.Background(), xos.NewEnv([]string{"BROWSER=exit 3;"}), "http://localhost:1")
	assert.Error(t, err)
}
