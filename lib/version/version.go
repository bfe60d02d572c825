// Package version holds the build version and checks GitHub for newer releases.
package version

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/github"
	"oss.terrastruct.com/cmdlog"
)

// Pre-built binaries will have version set correctly during build time.
var Version = "v0.1.0-HEAD"

const (
	repoOwner = "terrastruct"
	repoName  = "amrviz"
)

var semverRe = regexp.MustCompile(`[0-9]+\.[0-9]+\.[0-9]+`)

func OnlyNumbers() string {
	return semverRe.FindString(Version)
}

// CheckVersion prints the current version and warns when a newer release exists.
// Failing to reach GitHub is only logged at debug level.
func CheckVersion(ctx context.Context, hc *http.Client, w io.Writer, l *cmdlog.Logger) {
	fmt.Fprintln(w, Version)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	latest, err := latestRelease(ctx, hc)
	if err != nil {
		l.Debug.Printf("failed to check for updates: %v", err)
		return
	}
	if Newer(latest, OnlyNumbers()) {
		l.Info.Printf("a newer version of amrviz is available: %s (https://github.com/%s/%s/releases)", latest, repoOwner, repoName)
	}
}

func latestRelease(ctx context.Context, hc *http.Client) (string, error) {
	client := github.NewClient(hc)
	rel, _, err := client.Repositories.GetLatestRelease(ctx, repoOwner, repoName)
	if err != nil {
		return "", err
	}
	return rel.GetTagName(), nil
}

// Newer reports whether release a is strictly newer than release b.
// Both are compared on their major.minor.patch numbers; anything else is ignored.
func Newer(a, b string) bool {
	pa, ok := parse(a)
	if !ok {
		return false
	}
	pb, ok := parse(b)
	if !ok {
		return true
	}
	for i := range pa {
		if pa[i] != pb[i] {
			return pa[i] > pb[i]
		}
	}
	return false
}

func parse(s string) ([3]int, bool) {
	var out [3]int
	m := semverRe.FindString(s)
	if m == "" {
		return out, false
	}
	for i, p := range strings.SplitN(m, ".", 3) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
