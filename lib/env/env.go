// Package env reads the environment variables that configure library code
// outside of the command line flags.
package env

import (
	"os"
	"strconv"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// Timeout returns $AMRVIZ_TIMEOUT in seconds if set to a valid integer.
func Timeout() (int, bool) {
	if s := os.Getenv("AMRVIZ_TIMEOUT"); s != "" {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return int(i), true
		}
	}
	return -1, false
}
