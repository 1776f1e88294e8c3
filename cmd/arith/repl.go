package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"arith/interpreter-go/pkg/driver"
	"arith/interpreter-go/pkg/interpreter"
	"arith/interpreter-go/pkg/repl"
)

func (a *app) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive evaluator",
		Args:  cobra.NoArgs,
		RunE:  a.runREPL,
	}
}

func (a *app) runREPL(cmd *cobra.Command, _ []string) error {
	home, err := driver.ResolveHome()
	if err != nil {
		a.log.WithError(err).Warn("history will not be persisted")
		home = ""
	}

	stdin, ok := a.stdin.(io.ReadCloser)
	if !ok {
		stdin = io.NopCloser(a.stdin)
	}
	reader, err := a.openReader(repl.Options{
		Prompt:       a.config.Prompt,
		HistoryFile:  a.config.HistoryPath(home),
		HistoryLimit: a.config.History.Limit,
		Stdin:        stdin,
		Stdout:       a.stdout,
		Stderr:       a.stderr,
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	fmt.Fprintln(a.stdout, a.config.Greeting)
	return repl.NewSession(reader, a.stdout, interpreter.Evaluate, a.log).Run(cmd.Context())
}
