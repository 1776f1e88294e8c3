package repl

import (
	"context"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LineReader supplies one line per call and records history.
// *readline.Instance satisfies it.
type LineReader interface {
	Readline() (string, error)
	SaveHistory(content string) error
	Close() error
}

// EvaluateFunc is the single entry point into the interpreter.
type EvaluateFunc func(source string) (string, error)

// Session reads lines, evaluates each one independently and prints the
// outcome. Nothing carries over from one line to the next.
type Session struct {
	reader LineReader
	out    io.Writer
	eval   EvaluateFunc
	log    logrus.FieldLogger
}

func NewSession(reader LineReader, out io.Writer, eval EvaluateFunc, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{reader: reader, out: out, eval: eval, log: log}
}

// Run loops until the reader reports EOF, an interrupt on an empty line,
// or ctx is cancelled. Empty lines are neither evaluated nor recorded.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		line, err := s.reader.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if len(line) == 0 {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return errors.Wrap(err, "read line")
		}
		if len(line) == 0 {
			continue
		}
		if err := s.reader.SaveHistory(line); err != nil {
			s.log.WithError(err).Warn("could not record history")
		}
		s.evaluateLine(line)
	}
}

func (s *Session) evaluateLine(line string) {
	result, err := s.eval(line)
	if err != nil {
		s.log.WithField("source", line).WithError(err).Debug("evaluation failed")
		fmt.Fprintf(s.out, "Error: %s\n", err)
		return
	}
	s.log.WithField("source", line).Debug("evaluated")
	fmt.Fprintln(s.out, result)
}
