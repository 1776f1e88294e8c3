package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arith/interpreter-go/pkg/interpreter"
)

func (a *app) runCommand() *cobra.Command {
	var expressions []string
	cmd := &cobra.Command{
		Use:   "run [file...]",
		Short: "Evaluate source files or expressions",
		Example: `  arith run program.arith
  arith run -e "if is_zero zero then succ zero else zero"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := collectSources(expressions, args)
			if err != nil {
				return err
			}
			return a.evaluateSources(sources)
		},
	}
	addExpressionFlag(cmd.Flags(), &expressions, "evaluate")
	return cmd
}

// evaluateSources prints each source's results and stops at the first
// lexical or parse error.
func (a *app) evaluateSources(sources []source) error {
	for _, src := range sources {
		result, err := interpreter.Evaluate(src.text)
		if err != nil {
			a.log.WithField("source", src.name).Debug("evaluation failed")
			fmt.Fprintf(a.stderr, "Error: %s\n", err)
			return &exitCodeError{code: 1}
		}
		if result != "" {
			fmt.Fprintln(a.stdout, result)
		}
	}
	return nil
}
