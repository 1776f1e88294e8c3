package repl

import (
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
)

// Options configures the terminal line reader.
type Options struct {
	Prompt       string
	HistoryFile  string
	HistoryLimit int
	Stdin        io.ReadCloser
	Stdout       io.Writer
	Stderr       io.Writer
}

// NewLineReader opens a readline instance. History is only written through
// SaveHistory so that empty lines never reach the history file.
func NewLineReader(opts Options) (*readline.Instance, error) {
	if opts.HistoryFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.HistoryFile), 0o755); err != nil {
			return nil, errors.Wrapf(err, "create history directory for %s", opts.HistoryFile)
		}
	}
	limit := opts.HistoryLimit
	if limit == 0 {
		limit = -1
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 opts.Prompt,
		HistoryFile:            opts.HistoryFile,
		HistoryLimit:           limit,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		Stdin:                  opts.Stdin,
		Stdout:                 opts.Stdout,
		Stderr:                 opts.Stderr,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initialise line reader")
	}
	return rl, nil
}
