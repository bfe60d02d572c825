// Package xbrowser opens the watch preview in a browser.
package xbrowser

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/pkg/browser"

	"oss.terrastruct.com/xos"
)

// OpenURL opens url with $BROWSER when set, the system default otherwise.
// BROWSER=0 opens nothing.
func OpenURL(ctx context.Context, env *xos.Env, url string) error {
	browserEnv := env.Getenv("BROWSER")
	switch browserEnv {
	case "0", "false", "none":
		return nil
	case "":
		return browser.OpenURL(url)
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf(`%s "$1"`, browserEnv), "--", url)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %v (out: %q): %w", cmd.Args, out, err)
	}
	return nil
}
