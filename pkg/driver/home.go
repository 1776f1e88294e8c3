package driver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// HomeEnv overrides the per-user state directory.
const HomeEnv = "ARITH_HOME"

// ResolveHome returns $ARITH_HOME, or ~/.arith when it is unset.
func ResolveHome() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		abs, err := filepath.Abs(home)
		if err != nil {
			return "", errors.Wrapf(err, "resolve %s %q", HomeEnv, home)
		}
		return abs, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user home")
	}
	return filepath.Join(userHome, ".arith"), nil
}

// HistoryPath is where the REPL persists input history. It is empty when
// history is disabled.
func (c *Config) HistoryPath(home string) string {
	if c.History.Disabled {
		return ""
	}
	if c.History.File != "" {
		return c.History.File
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, "history")
}

// FixtureCacheDir holds git checkouts of fixture sources.
func FixtureCacheDir(home string) string {
	return filepath.Join(home, "fixtures")
}
